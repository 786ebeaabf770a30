//go:build !windows

package registry

func getPolicyValue(string) (string, error) {
	return "", ErrNotFound
}
