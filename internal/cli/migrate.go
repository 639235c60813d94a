package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zerobrew/zb-migrate/pkg/graph"
	"github.com/zerobrew/zb-migrate/pkg/migrate"
)

// migrateCommand creates the migrate command.
func (c *CLI) migrateCommand() *cobra.Command {
	var (
		dryRun      bool
		packages    []string
		interactive bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate safe packages to Zerobrew",
		Long: `Migrate installs your safe-to-migrate formulae into Zerobrew, working
through them in dependency order. Risky packages are skipped unless
named explicitly with --packages; packages on the keep list are never
migrated. Progress is recorded after every package, so an interrupted
run picks up where it left off.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client := c.newBrewClient(cfg, noCache)
			migrator, store, err := c.newMigrator(cfg)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)

			pkgs, err := c.enumerate(ctx, client, true, false)
			if err != nil {
				return err
			}

			plan, err := migrator.Plan(pkgs, migrate.PlanOptions{Packages: packages})
			if err != nil {
				return err
			}

			if dryRun {
				printPlan(plan)
				return nil
			}

			if len(plan.Steps) == 0 {
				printInfo("Nothing to migrate")
				printSkips(plan.Skipped)
				return nil
			}

			if prefix, err := client.Prefix(ctx); err != nil {
				c.Logger.Warn("could not detect Homebrew prefix", "error", err)
			} else if err := migrator.RecordPrefix(prefix); err != nil {
				return err
			}

			if interactive {
				if !isTerminal(os.Stdin) {
					printWarning("stdin is not a terminal, running non-interactively")
				} else {
					selected, aborted, err := selectSteps(plan.Steps)
					if err != nil {
						return err
					}
					if aborted {
						printInfo("Migration aborted")
						return nil
					}
					plan.Steps = selected
					if len(plan.Steps) == 0 {
						printInfo("No packages selected")
						return nil
					}
				}
			}

			report, err := migrator.Run(ctx, plan, func(i, total int, p graph.Package) {
				printInfo("[%d/%d] Installing %s", i, total, p.Name)
			})
			if report != nil {
				printMigrationReport(report, store.Path())
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the migration plan without installing anything")
	cmd.Flags().StringSliceVar(&packages, "packages", nil, "migrate only these packages (overrides the risky verdict)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "confirm each package before installing")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the tap lookup cache")

	return cmd
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// printPlan renders a dry-run plan.
func printPlan(plan *migrate.Plan) {
	fmt.Println(StyleTitle.Render("Migration Plan"))
	printDetail("run %s", plan.RunID)
	printNewline()

	if len(plan.Steps) == 0 {
		printInfo("Nothing to migrate")
	}
	for i, p := range plan.Steps {
		fmt.Printf("  %2d. %-28s %s\n", i+1, p.Name, StyleDim.Render(p.Version))
	}
	printSkips(plan.Skipped)
}

// printSkips lists everything the plan left out, with reasons.
func printSkips(skips []migrate.Skip) {
	if len(skips) == 0 {
		return
	}
	printNewline()
	fmt.Println(StyleDim.Render("Skipped:"))
	for _, s := range skips {
		printDetail("%-28s %s", s.Name, s.Reason)
	}
}

// printMigrationReport summarizes a completed run.
func printMigrationReport(r *migrate.Report, statePath string) {
	printNewline()
	for _, step := range r.Succeeded {
		printSuccess("%s %s", step.Package.Name, StyleDim.Render(step.Package.Version))
	}
	for _, step := range r.Failed {
		printError("%s: %v", step.Package.Name, step.Err)
	}
	printSkips(r.Skipped)

	printNewline()
	printDetail("%s migrated, %d failed, %d skipped in %s",
		plural(len(r.Succeeded), "package"), len(r.Failed), len(r.Skipped),
		r.Duration.Round(time.Millisecond))
	printDetail("state: %s", statePath)

	if len(r.Succeeded) > 0 {
		printNextStep("Remove migrated packages from Homebrew", "zb-migrate cleanup")
	}
}
