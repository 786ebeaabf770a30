package elevation

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// AssumeYes confirms without asking.
func AssumeYes(string) bool {
	return true
}

// TerminalConfirmer asks on the terminal attached to in. Without a terminal
// there is nobody to ask, which counts as a refusal.
func TerminalConfirmer(in *os.File) Confirmer {
	return func(question string) bool {
		if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
			return false
		}

		confirmed := true
		err := huh.NewConfirm().
			Title(question).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed).
			Run()
		if err != nil {
			return false
		}
		return confirmed
	}
}
