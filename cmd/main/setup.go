package main

import (
	"fmt"
	"os"
	"strings"

	"KiskaLE/GestureDrop-Firewall/internal/elevation"
	"KiskaLE/GestureDrop-Firewall/internal/models"

	"github.com/spf13/cobra"
)

// requireElevation lets the command continue only in an elevated process.
// Otherwise it relaunches the executable elevated, or stops when that is
// refused. No rule is touched before this returns nil.
func requireElevation(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	if !elevator.IsElevated() {
		fmt.Fprintln(out, warnStyle.Render("[WARNING] This tool needs Administrator privileges."))
		fmt.Fprintln(out)
	}

	res, err := elevation.Ensure(elevator, newConfirmer(opts.yes), os.Args[1:])
	switch res.Outcome {
	case elevation.Elevated:
		fmt.Fprintln(out, okStyle.Render("[OK] Running as Administrator."))
		fmt.Fprintln(out)
		return nil
	case elevation.Relaunched:
		fmt.Fprintln(out, infoStyle.Render("[INFO] Continuing in the elevated process."))
		return &exitError{code: res.ExitCode}
	default:
		fmt.Fprintln(out, "[MANUAL] Run this tool from an Administrator terminal:")
		fmt.Fprintf(out, "   %s\n", strings.Join(os.Args, " "))
		return &exitError{code: res.ExitCode, err: err}
	}
}

func runSetup(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()
	printBanner(out, "Firewall Setup")

	if err := requireElevation(cmd, opts); err != nil {
		return err
	}

	p, err := opts.provisioner()
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	rules := models.Rules()
	fmt.Fprintf(out, "[STEP 1] Applying %d firewall rules via %s...\n\n", len(rules), p.Name())

	report, err := p.Provision(cmd.Context(), rules)
	if report != nil {
		printReport(out, report)
	}

	if err != nil {
		printSummary(out, false,
			"Some rules failed. Try running manually from an",
			"Administrator terminal, or check the log for details.")
		return &exitError{code: 1, err: err}
	}

	printSummary(out, true,
		"All firewall rules added successfully!",
		"GestureDrop is ready to use on this machine.")
	return nil
}
