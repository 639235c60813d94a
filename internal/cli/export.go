package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/zerobrew/zb-migrate/pkg/brewfile"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export installed packages as a Brewfile",
		Long:  `Export writes the installed formulae, casks, and taps in Brewfile format, giving you a brew-bundle compatible backup before migrating anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client := c.newBrewClient(cfg, false)
			ctx := withLogger(cmd.Context(), c.Logger)

			// Detailed enumeration so tap lines come out right.
			pkgs, err := c.enumerate(ctx, client, true, true)
			if err != nil {
				return err
			}

			if output == "" {
				return brewfile.Write(os.Stdout, pkgs)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := brewfile.Write(f, pkgs); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			printSuccess("Exported %s", plural(len(pkgs), "package"))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")

	return cmd
}
