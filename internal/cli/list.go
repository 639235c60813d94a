package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		casks    bool
		asJSON   bool
		detailed bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show installed Homebrew packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client := c.newBrewClient(cfg, noCache)
			ctx := withLogger(cmd.Context(), c.Logger)

			pkgs, err := c.enumerate(ctx, client, detailed, casks)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(pkgs)
			}

			if len(pkgs) == 0 {
				printInfo("No Homebrew packages installed")
				return nil
			}

			for _, p := range pkgs {
				line := fmt.Sprintf("%-28s %s", p.Name, StyleDim.Render(p.Version))
				switch {
				case p.IsCask:
					line += " " + StyleDim.Render("(cask)")
				case p.Pinned:
					line += " " + StyleWarning.Render("(pinned)")
				}
				if p.Tap != "" {
					line += " " + StyleDim.Render(p.Tap)
				}
				fmt.Println(line)
			}
			printNewline()
			printDetail("%s installed", plural(len(pkgs), "package"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&casks, "casks", false, "include casks")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "resolve dependencies and taps (slower)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the tap lookup cache")

	return cmd
}
