package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zerobrew/zb-migrate/pkg/analysis"
	"github.com/zerobrew/zb-migrate/pkg/observability"
	"github.com/zerobrew/zb-migrate/pkg/render"
)

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		asJSON    bool
		graphFile string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify installed packages by migration risk",
		Long: `Analyze enumerates your installed formulae, walks their dependency
graphs, and sorts every package into one of three buckets: safe to
migrate, risky (depends on problematic packages), or keep in Homebrew.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client := c.newBrewClient(cfg, noCache)
			ctx := withLogger(cmd.Context(), c.Logger)

			pkgs, err := c.enumerate(ctx, client, true, false)
			if err != nil {
				return err
			}

			report := analysis.Classify(pkgs, cfg.BuildDenylist())
			observability.Analysis().OnClassifyComplete(ctx,
				len(report.SafeToMigrate), len(report.Risky), len(report.KeepInHomebrew))

			if graphFile != "" {
				svg, err := render.RenderSVG(ctx, pkgs, report.Verdicts())
				if err != nil {
					return fmt.Errorf("render graph: %w", err)
				}
				if err := os.WriteFile(graphFile, svg, 0644); err != nil {
					return err
				}
				printSuccess("Rendered dependency graph")
				printFile(graphFile)
			}

			if asJSON {
				return report.WriteJSON(os.Stdout)
			}

			printAnalysis(report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output the full report as JSON")
	cmd.Flags().StringVar(&graphFile, "graph", "", "also render the dependency graph as SVG to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the tap lookup cache")

	return cmd
}

// printAnalysis renders the classification report for humans.
func printAnalysis(report *analysis.Report) {
	fmt.Println(StyleTitle.Render("Migration Analysis"))
	printCounts(len(report.SafeToMigrate), len(report.Risky), len(report.KeepInHomebrew))
	printNewline()

	if len(report.SafeToMigrate) > 0 {
		fmt.Println(StyleSuccess.Render("Safe to migrate:"))
		for _, p := range report.SafeToMigrate {
			fmt.Printf("  %-28s %s\n", p.Name, StyleDim.Render(p.Version))
		}
		printNewline()
	}

	if len(report.Risky) > 0 {
		fmt.Println(StyleWarning.Render("Risky:"))
		for _, p := range report.Risky {
			fmt.Printf("  %-28s %s\n", p.Name, StyleDim.Render(p.Reason))
			for _, dep := range p.ProblematicDependencies {
				printDetail("depends on %s", dep)
			}
		}
		printNewline()
	}

	if len(report.KeepInHomebrew) > 0 {
		fmt.Println(StyleError.Render("Keep in Homebrew:"))
		for _, p := range report.KeepInHomebrew {
			fmt.Printf("  %-28s %s\n", p.Name, StyleDim.Render(p.Reason))
		}
		printNewline()
	}

	if len(report.SafeToMigrate) > 0 {
		printNextStep("Migrate the safe packages", "zb-migrate migrate")
	}
}
