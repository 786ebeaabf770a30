package elevation

import (
	"errors"
	"fmt"
)

// ErrElevationDenied means the user or the OS refused administrator rights.
var ErrElevationDenied = errors.New("administrator privileges were not granted")

type Outcome int

const (
	// Elevated means the current process already has administrator rights.
	Elevated Outcome = iota
	// Relaunched means an elevated copy was started and this one should exit.
	Relaunched
	// Denied means no elevated process runs; nothing may be changed.
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Elevated:
		return "elevated"
	case Relaunched:
		return "relaunched"
	case Denied:
		return "denied"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Elevator checks and requests administrator rights.
type Elevator interface {
	IsElevated() bool
	// Relaunch starts this executable again with elevation and the given
	// arguments, returning the exit code to finish the current process with.
	Relaunch(args []string) (int, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer func(question string) bool

type Result struct {
	Outcome  Outcome
	ExitCode int
}

const relaunchQuestion = "Administrator privileges are required. Relaunch elevated?"

// Ensure passes when the process is elevated. Otherwise it asks for
// confirmation and relaunches the executable elevated with args.
func Ensure(el Elevator, confirm Confirmer, args []string) (Result, error) {
	if el.IsElevated() {
		return Result{Outcome: Elevated}, nil
	}

	if confirm != nil && !confirm(relaunchQuestion) {
		return Result{Outcome: Denied, ExitCode: 2}, ErrElevationDenied
	}

	code, err := el.Relaunch(args)
	if err != nil {
		return Result{Outcome: Denied, ExitCode: 2}, fmt.Errorf("%w: %v", ErrElevationDenied, err)
	}
	return Result{Outcome: Relaunched, ExitCode: code}, nil
}
