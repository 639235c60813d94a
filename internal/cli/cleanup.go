package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zerobrew/zb-migrate/pkg/state"
)

// cleanupCommand creates the cleanup command.
func (c *CLI) cleanupCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Uninstall migrated packages from Homebrew",
		Long: `Cleanup removes the Homebrew copies of packages that were already
migrated to Zerobrew, so you stop shipping two of everything. Only
packages recorded in the migration state are touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client := c.newBrewClient(cfg, false)
			store, err := state.NewFileStore(cfg.Paths.State)
			if err != nil {
				return err
			}
			st, err := store.Load()
			if err != nil {
				return err
			}

			if len(st.Migrated) == 0 {
				printInfo("No migrated packages to clean up")
				return nil
			}

			printInfo("%s will be uninstalled from Homebrew:", plural(len(st.Migrated), "package"))
			for _, r := range st.Migrated {
				printDetail("%s", r.Name)
			}

			if !force && !confirm("Proceed?") {
				printInfo("Cleanup aborted")
				return nil
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			removed := 0
			// Forget mutates st.Migrated, so iterate a copy.
			records := make([]state.Record, len(st.Migrated))
			copy(records, st.Migrated)
			for _, r := range records {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := client.Uninstall(ctx, r.Name); err != nil {
					printError("%s: %v", r.Name, err)
					continue
				}
				st.Forget(r.Name)
				removed++
				printSuccess("Uninstalled %s", r.Name)
			}

			if err := store.Save(st); err != nil {
				return err
			}
			printNewline()
			printDetail("%s removed from Homebrew", plural(removed, "package"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question on stdin. Anything but y/yes is a no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
