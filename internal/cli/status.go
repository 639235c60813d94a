package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zerobrew/zb-migrate/pkg/state"
)

// statusCommand creates the status command.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show recorded migration state",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := state.NewFileStore(cfg.Paths.State)
			if err != nil {
				return err
			}
			st, err := store.Load()
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Migration Status"))
			printKeyValue("Migrated", plural(len(st.Migrated), "package"))
			printKeyValue("Failed", plural(len(st.Failed), "package"))
			if st.HomebrewPrefix != "" {
				printKeyValue("Homebrew prefix", st.HomebrewPrefix)
			}
			printKeyValue("State file", store.Path())

			if len(st.Migrated) > 0 {
				printNewline()
				fmt.Println(StyleSuccess.Render("Migrated:"))
				for _, r := range st.Migrated {
					fmt.Printf("  %-28s %s\n", r.Name, StyleDim.Render(r.Version))
				}
			}

			if len(st.Failed) > 0 {
				printNewline()
				fmt.Println(StyleError.Render("Failed:"))
				for _, f := range st.Failed {
					fmt.Printf("  %-28s %s\n", f.Name, StyleDim.Render(f.Reason))
				}
			}

			if len(st.Migrated) == 0 && len(st.Failed) == 0 {
				printNewline()
				printNextStep("Start by analyzing your packages", "zb-migrate analyze")
			}
			return nil
		},
	}
}
