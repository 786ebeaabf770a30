//go:build windows

package firewall

// DefaultDelegate runs setup_firewall.ps1 through Windows PowerShell,
// falling back to PowerShell 7.
func DefaultDelegate() Delegate {
	return Delegate{
		Interpreters: []string{"powershell", "pwsh"},
		Args:         []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-File"},
		ScriptName:   "setup_firewall.ps1",
		Format:       FormatPowerShell,
	}
}
