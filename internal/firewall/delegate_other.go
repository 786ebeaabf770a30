//go:build !windows

package firewall

// DefaultDelegate runs setup_firewall.sh through the POSIX shell.
func DefaultDelegate() Delegate {
	return Delegate{
		Interpreters: []string{"sh"},
		ScriptName:   "setup_firewall.sh",
		Format:       FormatShell,
	}
}
