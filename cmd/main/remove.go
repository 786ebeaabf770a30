package main

import (
	"fmt"

	"KiskaLE/GestureDrop-Firewall/internal/models"

	"github.com/spf13/cobra"
)

func newRemoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the GestureDrop firewall rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			printBanner(out, "Firewall Removal")

			if err := requireElevation(cmd, opts); err != nil {
				return err
			}

			m, err := opts.manager()
			if err != nil {
				return &exitError{code: 1, err: err}
			}

			if err := m.Remove(cmd.Context(), models.Rules()); err != nil {
				printSummary(out, false, "Some rules could not be removed.")
				return &exitError{code: 1, err: err}
			}

			printSummary(out, true, fmt.Sprintf("All %d GestureDrop firewall rules removed.", len(models.Rules())))
			return nil
		},
	}
}
