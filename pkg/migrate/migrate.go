// Package migrate plans and executes migrations from Homebrew to Zerobrew.
//
// A migration is a two step affair. Plan inspects the installed packages,
// classifies them, and produces an ordered list of install steps plus the
// reasons anything was left out. Run executes a plan step by step, records
// progress in the state store after every package, and keeps going past
// individual failures so one broken bottle does not strand the rest.
package migrate

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zerobrew/zb-migrate/pkg/analysis"
	"github.com/zerobrew/zb-migrate/pkg/errors"
	"github.com/zerobrew/zb-migrate/pkg/graph"
	"github.com/zerobrew/zb-migrate/pkg/observability"
	"github.com/zerobrew/zb-migrate/pkg/state"
)

// Installer installs a single package into Zerobrew.
type Installer interface {
	Install(ctx context.Context, name string) error
}

// Store persists migration state between runs.
type Store interface {
	Load() (*state.State, error)
	Save(*state.State) error
}

// Migrator plans and runs migrations.
type Migrator struct {
	installer Installer
	store     Store
	deny      analysis.Denylist
}

// NewMigrator creates a migrator. The denylist drives which packages are
// considered safe; pass config.BuildDenylist() output or the default.
func NewMigrator(installer Installer, store Store, deny analysis.Denylist) *Migrator {
	return &Migrator{installer: installer, store: store, deny: deny}
}

// RecordPrefix stores the detected Homebrew prefix in the migration
// state so later status and cleanup runs know which installation the
// records refer to. Saving is skipped when the prefix is unchanged.
func (m *Migrator) RecordPrefix(prefix string) error {
	st, err := m.store.Load()
	if err != nil {
		return err
	}
	if st.HomebrewPrefix == prefix {
		return nil
	}
	st.HomebrewPrefix = prefix
	return m.store.Save(st)
}

// SkipReason explains why a package was excluded from a plan.
type SkipReason string

const (
	SkipMigrated SkipReason = "already migrated"
	SkipRisky    SkipReason = "risky dependencies"
	SkipKeep     SkipReason = "should stay in Homebrew"
	SkipPinned   SkipReason = "pinned in Homebrew"
	SkipCask     SkipReason = "casks are not migratable"
	SkipUnknown  SkipReason = "not installed"
)

// Skip records one excluded package.
type Skip struct {
	Name   string
	Reason SkipReason
}

// Plan is an ordered migration proposal. Steps are in dependency order:
// installing them front to back never installs a package before one of its
// in-plan dependencies.
type Plan struct {
	RunID   string
	Steps   []graph.Package
	Skipped []Skip
}

// PlanOptions selects which packages a plan covers.
type PlanOptions struct {
	// Packages restricts the plan to these names. Empty means every safe
	// package. Explicitly named packages bypass the risky verdict but
	// never the keep verdict.
	Packages []string
}

// Plan builds a migration plan from the installed package set.
func (m *Migrator) Plan(pkgs []graph.Package, opts PlanOptions) (*Plan, error) {
	st, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	report := analysis.Classify(pkgs, m.deny)
	verdicts := report.Verdicts()

	selected := make(map[string]bool, len(opts.Packages))
	for _, name := range opts.Packages {
		selected[name] = true
	}

	plan := &Plan{RunID: uuid.NewString()}
	known := make(map[string]bool, len(pkgs))

	var candidates []graph.Package
	for _, p := range pkgs {
		known[p.Name] = true
		if len(selected) > 0 && !selected[p.Name] {
			continue
		}
		if reason, skip := m.skipReason(p, verdicts[p.Name], st, len(selected) > 0); skip {
			plan.Skipped = append(plan.Skipped, Skip{Name: p.Name, Reason: reason})
			continue
		}
		candidates = append(candidates, p)
	}

	for name := range selected {
		if !known[name] {
			plan.Skipped = append(plan.Skipped, Skip{Name: name, Reason: SkipUnknown})
		}
	}
	sort.Slice(plan.Skipped, func(i, j int) bool {
		return plan.Skipped[i].Name < plan.Skipped[j].Name
	})

	plan.Steps = graph.Order(candidates)
	return plan, nil
}

func (m *Migrator) skipReason(p graph.Package, v analysis.Verdict, st *state.State, explicit bool) (SkipReason, bool) {
	switch {
	case p.IsCask:
		return SkipCask, true
	case st.IsMigrated(p.Name):
		return SkipMigrated, true
	case v == analysis.VerdictKeep:
		return SkipKeep, true
	case v == analysis.VerdictRisky && !explicit:
		return SkipRisky, true
	case p.Pinned:
		return SkipPinned, true
	}
	return "", false
}

// StepResult records the outcome of one install step.
type StepResult struct {
	Package graph.Package
	Err     error
}

// Report summarizes a completed run.
type Report struct {
	RunID     string
	Succeeded []StepResult
	Failed    []StepResult
	Skipped   []Skip
	Duration  time.Duration
}

// Run executes a plan. Installs run in plan order; a failed install is
// recorded and skipped over rather than aborting the run. State is saved
// after every package so an interrupted run resumes where it stopped.
// onStep, if non-nil, is called before each install begins.
func (m *Migrator) Run(ctx context.Context, plan *Plan, onStep func(i, total int, p graph.Package)) (*Report, error) {
	st, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	observability.Migration().OnRunStart(ctx, plan.RunID, len(plan.Steps))

	report := &Report{RunID: plan.RunID, Skipped: plan.Skipped}
	for i, p := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if onStep != nil {
			onStep(i+1, len(plan.Steps), p)
		}

		observability.Migration().OnInstallStart(ctx, plan.RunID, p.Name)
		stepStart := time.Now()
		installErr := m.installer.Install(ctx, p.Name)
		observability.Migration().OnInstallComplete(ctx, plan.RunID, p.Name, time.Since(stepStart), installErr)

		if installErr != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			report.Failed = append(report.Failed, StepResult{Package: p, Err: installErr})
			st.AddFailure(state.Failure{
				Name:     p.Name,
				Reason:   errors.UserMessage(installErr),
				RunID:    plan.RunID,
				FailedAt: time.Now().UTC(),
			})
		} else {
			report.Succeeded = append(report.Succeeded, StepResult{Package: p})
			st.AddMigrated(state.Record{
				Name:       p.Name,
				Version:    p.Version,
				RunID:      plan.RunID,
				MigratedAt: time.Now().UTC(),
			})
		}

		if err := m.store.Save(st); err != nil {
			return report, err
		}
	}

	report.Duration = time.Since(started)
	observability.Migration().OnRunComplete(ctx, plan.RunID,
		len(report.Succeeded), len(report.Failed), len(report.Skipped), report.Duration)
	return report, nil
}
