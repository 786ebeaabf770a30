package registry

import "errors"

// ErrNotFound is returned when the policy key or value does not exist.
var ErrNotFound = errors.New("registry value not found")

// PolicyValue reads a string value from the machine-wide GestureDrop policy key.
func PolicyValue(name string) (string, error) {
	return getPolicyValue(name)
}
