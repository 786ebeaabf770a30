//go:build unix

package elevation

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

type sudoElevator struct{}

// System returns the elevator of the running platform.
func System() Elevator {
	return sudoElevator{}
}

func (sudoElevator) IsElevated() bool {
	return unix.Geteuid() == 0
}

// Relaunch runs this executable again through sudo in the same terminal
// and hands back its exit code.
func (sudoElevator) Relaunch(args []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 1, fmt.Errorf("failed to resolve executable path: %w", err)
	}
	sudo, err := exec.LookPath("sudo")
	if err != nil {
		return 1, fmt.Errorf("sudo not found: %w", err)
	}

	cmd := exec.Command(sudo, append([]string{"--", exe}, args...)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 1, err
	}
	return 0, nil
}
