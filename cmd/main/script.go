package main

import (
	"bytes"
	"fmt"
	"os"

	"KiskaLE/GestureDrop-Firewall/internal/firewall"
	"KiskaLE/GestureDrop-Firewall/internal/models"
	"KiskaLE/GestureDrop-Firewall/internal/utils"

	"github.com/spf13/cobra"
)

func newScriptCmd(opts *options) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "script",
		Short: "Write the provisioning script used for delegation",
		Long:  "Writes a script that applies the same rules as this tool. Place it next to the executable to have it used instead of calling the firewall tool directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := firewall.ParseScriptFormat(format)
			if err != nil {
				return &exitError{code: 1, err: err}
			}

			var buf bytes.Buffer
			if err := firewall.RenderScript(&buf, f, models.Rules()); err != nil {
				return &exitError{code: 1, err: err}
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			var perm os.FileMode = 0o644
			if f == firewall.FormatShell {
				perm = 0o755
			}
			if err := os.WriteFile(output, buf.Bytes(), perm); err != nil {
				return &exitError{code: 1, err: fmt.Errorf("failed to write %s: %w", output, err)}
			}
			utils.Infof("provisioning script written to %s", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Script written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(firewall.DefaultDelegate().Format), "script format: ps1 or sh")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
