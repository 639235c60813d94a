package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// outdatedCommand creates the outdated command.
// Zerobrew has no update check yet, so this points at the manual path.
func (c *CLI) outdatedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "How to check for package updates",
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("Zerobrew does not currently support checking for updates")
			printNewline()
			fmt.Println("To check for updates on packages still in Homebrew:")
			printCommand("brew outdated")
			printNewline()
			fmt.Println("To update a Zerobrew package, reinstall it:")
			printCommand("zb uninstall <package>")
			printCommand("zb install <package>")
			return nil
		},
	}
}

// upgradeCommand creates the upgrade command.
func (c *CLI) upgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "How to upgrade packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("Zerobrew does not currently support bulk upgrades")
			printNewline()
			fmt.Println("To upgrade packages still in Homebrew:")
			printCommand("brew upgrade")
			printNewline()
			fmt.Println("To upgrade a Zerobrew package, reinstall it:")
			printCommand("zb uninstall <package>")
			printCommand("zb install <package>")
			printNewline()
			fmt.Println("To list installed Zerobrew packages:")
			printCommand("zb list")
			return nil
		},
	}
}
