package main

import (
	"fmt"

	"KiskaLE/GestureDrop-Firewall/internal/models"

	"github.com/spf13/cobra"
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which GestureDrop firewall rules exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			m, err := opts.manager()
			if err != nil {
				return &exitError{code: 1, err: err}
			}

			missing := 0
			for _, rule := range models.Rules() {
				present, err := m.Present(cmd.Context(), rule)
				state := okStyle.Render("PRESENT")
				switch {
				case err != nil:
					state = errorStyle.Render("ERROR  ")
					missing++
				case !present:
					state = warnStyle.Render("MISSING")
					missing++
				}
				fmt.Fprintf(out, "   [%s]  %-30s %s  port %4d\n", state, rule.Name, rule.Label(), rule.Port)
				if err != nil {
					fmt.Fprintln(out, mutedStyle.Render("              "+err.Error()))
				}
			}

			if missing > 0 {
				return &exitError{code: 1, err: fmt.Errorf("%d of %d rules missing", missing, len(models.Rules()))}
			}
			return nil
		},
	}
}
