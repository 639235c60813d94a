package migrate

import (
	"context"
	"errors"
	"testing"

	"github.com/zerobrew/zb-migrate/pkg/analysis"
	"github.com/zerobrew/zb-migrate/pkg/graph"
	"github.com/zerobrew/zb-migrate/pkg/state"
)

// memStore keeps state in memory for tests.
type memStore struct {
	st    state.State
	saves int
}

func (m *memStore) Load() (*state.State, error) {
	cp := m.st
	return &cp, nil
}

func (m *memStore) Save(st *state.State) error {
	m.st = *st
	m.saves++
	return nil
}

// fakeInstaller records installs and fails for configured names.
type fakeInstaller struct {
	installed []string
	failOn    map[string]bool
}

func (f *fakeInstaller) Install(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.failOn[name] {
		return errors.New("install failed: " + name)
	}
	f.installed = append(f.installed, name)
	return nil
}

func newMigrator(deny analysis.Denylist) (*Migrator, *fakeInstaller, *memStore) {
	inst := &fakeInstaller{failOn: map[string]bool{}}
	store := &memStore{}
	return NewMigrator(inst, store, deny), inst, store
}

func TestPlanExcludesRiskyAndKeep(t *testing.T) {
	m, _, _ := newMigrator(analysis.NewDenylist("openssl@3"))
	pkgs := []graph.Package{
		{Name: "openssl@3", Version: "3.3.1"},
		{Name: "curl", Version: "8.9.1", Dependencies: []string{"openssl@3"}},
		{Name: "jq", Version: "1.7.1"},
	}

	plan, err := m.Plan(pkgs, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan.Steps) != 1 || plan.Steps[0].Name != "jq" {
		t.Fatalf("expected only jq planned, got %v", stepNames(plan))
	}

	reasons := map[string]SkipReason{}
	for _, s := range plan.Skipped {
		reasons[s.Name] = s.Reason
	}
	if reasons["openssl@3"] != SkipKeep {
		t.Errorf("expected openssl@3 kept in Homebrew, got %q", reasons["openssl@3"])
	}
	if reasons["curl"] != SkipRisky {
		t.Errorf("expected curl skipped as risky, got %q", reasons["curl"])
	}
}

func TestPlanDependencyOrder(t *testing.T) {
	m, _, _ := newMigrator(analysis.NewDenylist())
	pkgs := []graph.Package{
		{Name: "app", Dependencies: []string{"lib"}},
		{Name: "lib"},
	}

	plan, err := m.Plan(pkgs, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	names := stepNames(plan)
	if len(names) != 2 || names[0] != "lib" || names[1] != "app" {
		t.Errorf("expected [lib app], got %v", names)
	}
}

func TestPlanSkipsMigratedPinnedAndCasks(t *testing.T) {
	m, _, store := newMigrator(analysis.NewDenylist())
	store.st.AddMigrated(state.Record{Name: "jq"})

	pkgs := []graph.Package{
		{Name: "jq"},
		{Name: "htop", Pinned: true},
		{Name: "firefox", IsCask: true},
		{Name: "wget"},
	}

	plan, err := m.Plan(pkgs, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(plan.Steps) != 1 || plan.Steps[0].Name != "wget" {
		t.Fatalf("expected only wget planned, got %v", stepNames(plan))
	}

	reasons := map[string]SkipReason{}
	for _, s := range plan.Skipped {
		reasons[s.Name] = s.Reason
	}
	if reasons["jq"] != SkipMigrated || reasons["htop"] != SkipPinned || reasons["firefox"] != SkipCask {
		t.Errorf("unexpected skip reasons: %v", reasons)
	}
}

func TestPlanExplicitSelection(t *testing.T) {
	m, _, _ := newMigrator(analysis.NewDenylist("openssl@3"))
	pkgs := []graph.Package{
		{Name: "openssl@3"},
		{Name: "curl", Dependencies: []string{"openssl@3"}},
		{Name: "jq"},
	}

	plan, err := m.Plan(pkgs, PlanOptions{Packages: []string{"curl", "openssl@3", "ghost"}})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	// Explicit selection overrides the risky verdict but not keep, and
	// unknown names are reported rather than silently dropped.
	if len(plan.Steps) != 1 || plan.Steps[0].Name != "curl" {
		t.Fatalf("expected only curl planned, got %v", stepNames(plan))
	}
	reasons := map[string]SkipReason{}
	for _, s := range plan.Skipped {
		reasons[s.Name] = s.Reason
	}
	if reasons["openssl@3"] != SkipKeep {
		t.Errorf("explicit selection must not override keep, got %q", reasons["openssl@3"])
	}
	if reasons["ghost"] != SkipUnknown {
		t.Errorf("expected ghost reported unknown, got %q", reasons["ghost"])
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	m, inst, store := newMigrator(analysis.NewDenylist())
	inst.failOn["b"] = true

	plan, err := m.Plan([]graph.Package{{Name: "a"}, {Name: "b"}, {Name: "c"}}, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	report, err := m.Run(context.Background(), plan, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Succeeded) != 2 || len(report.Failed) != 1 {
		t.Fatalf("expected 2 ok 1 failed, got %d/%d", len(report.Succeeded), len(report.Failed))
	}
	if report.Failed[0].Package.Name != "b" {
		t.Errorf("expected b to fail, got %s", report.Failed[0].Package.Name)
	}
	if !store.st.IsMigrated("a") || !store.st.IsMigrated("c") {
		t.Error("expected a and c recorded migrated")
	}
	if store.st.IsMigrated("b") {
		t.Error("b must not be recorded migrated")
	}
	if len(store.st.Failed) != 1 || store.st.Failed[0].Name != "b" {
		t.Errorf("expected failure recorded for b, got %v", store.st.Failed)
	}
}

func TestRunSavesAfterEveryStep(t *testing.T) {
	m, _, store := newMigrator(analysis.NewDenylist())

	plan, err := m.Plan([]graph.Package{{Name: "a"}, {Name: "b"}}, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if _, err := m.Run(context.Background(), plan, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if store.saves != 2 {
		t.Errorf("expected a save per step, got %d", store.saves)
	}
}

func TestRunCancellation(t *testing.T) {
	m, inst, _ := newMigrator(analysis.NewDenylist())

	plan, err := m.Plan([]graph.Package{{Name: "a"}, {Name: "b"}}, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	_, runErr := m.Run(ctx, plan, func(i, total int, p graph.Package) {
		cancel()
	})
	if !errors.Is(runErr, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", runErr)
	}
	if len(inst.installed) != 0 {
		t.Errorf("expected no installs after cancellation, got %v", inst.installed)
	}
}

func TestRunReportsProgress(t *testing.T) {
	m, _, _ := newMigrator(analysis.NewDenylist())

	plan, err := m.Plan([]graph.Package{{Name: "a"}, {Name: "b"}}, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	var seen []string
	if _, err := m.Run(context.Background(), plan, func(i, total int, p graph.Package) {
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		seen = append(seen, p.Name)
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("expected 2 progress calls, got %v", seen)
	}
}

func TestPlanRunIDsUnique(t *testing.T) {
	m, _, _ := newMigrator(analysis.NewDenylist())

	p1, err := m.Plan(nil, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	p2, err := m.Plan(nil, PlanOptions{})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if p1.RunID == "" || p1.RunID == p2.RunID {
		t.Errorf("expected distinct run IDs, got %q and %q", p1.RunID, p2.RunID)
	}
}

func TestRecordPrefix(t *testing.T) {
	m, _, store := newMigrator(analysis.NewDenylist())

	if err := m.RecordPrefix("/opt/homebrew"); err != nil {
		t.Fatalf("RecordPrefix failed: %v", err)
	}
	if store.st.HomebrewPrefix != "/opt/homebrew" {
		t.Errorf("expected prefix persisted, got %q", store.st.HomebrewPrefix)
	}

	// Recording the same prefix again does not rewrite the state.
	saves := store.saves
	if err := m.RecordPrefix("/opt/homebrew"); err != nil {
		t.Fatalf("RecordPrefix failed: %v", err)
	}
	if store.saves != saves {
		t.Errorf("expected no save for unchanged prefix, got %d extra", store.saves-saves)
	}

	if err := m.RecordPrefix("/usr/local"); err != nil {
		t.Fatalf("RecordPrefix failed: %v", err)
	}
	if store.st.HomebrewPrefix != "/usr/local" {
		t.Errorf("expected prefix updated, got %q", store.st.HomebrewPrefix)
	}
}

func stepNames(p *Plan) []string {
	var names []string
	for _, s := range p.Steps {
		names = append(names, s.Name)
	}
	return names
}
