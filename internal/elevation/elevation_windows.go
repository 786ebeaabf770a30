//go:build windows

package elevation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows"
)

type tokenElevator struct{}

// System returns the elevator of the running platform.
func System() Elevator {
	return tokenElevator{}
}

func (tokenElevator) IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// Relaunch triggers the UAC prompt through ShellExecute "runas". The new
// process opens its own console, so it is told to pause before exiting.
func (tokenElevator) Relaunch(args []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 1, fmt.Errorf("failed to resolve executable path: %w", err)
	}

	params := make([]string, 0, len(args)+1)
	pause := false
	for _, arg := range args {
		if arg == "--pause" {
			pause = true
		}
		params = append(params, windows.EscapeArg(arg))
	}
	if !pause {
		params = append(params, "--pause")
	}

	verb, err := windows.UTF16PtrFromString("runas")
	if err != nil {
		return 1, err
	}
	file, err := windows.UTF16PtrFromString(exe)
	if err != nil {
		return 1, err
	}
	argv, err := windows.UTF16PtrFromString(strings.Join(params, " "))
	if err != nil {
		return 1, err
	}
	cwd, err := windows.UTF16PtrFromString(filepath.Dir(exe))
	if err != nil {
		return 1, err
	}

	// ERROR_CANCELLED when the user declines the UAC prompt
	if err := windows.ShellExecute(0, verb, file, argv, cwd, windows.SW_NORMAL); err != nil {
		return 1, err
	}
	return 0, nil
}
