package analysis

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is the aggregated classification of one analysis run.
// The three buckets are sorted by package name; TotalPackages always equals
// the sum of the bucket lengths.
type Report struct {
	SafeToMigrate  []PackageAnalysis `json:"safe_to_migrate"`
	Risky          []PackageAnalysis `json:"risky"`
	KeepInHomebrew []PackageAnalysis `json:"should_keep_in_homebrew"`
	TotalPackages  int               `json:"total_packages"`
}

// NewReport aggregates pre-classified buckets into a Report.
// It returns an error if total does not equal the sum of the bucket
// lengths; a mismatch indicates a classification bug and must not be
// silently tolerated.
func NewReport(total int, safe, risky, keep []PackageAnalysis) (*Report, error) {
	if sum := len(safe) + len(risky) + len(keep); sum != total {
		return nil, fmt.Errorf("report buckets hold %d packages, expected %d", sum, total)
	}
	return &Report{
		SafeToMigrate:  safe,
		Risky:          risky,
		KeepInHomebrew: keep,
		TotalPackages:  total,
	}, nil
}

// Verdicts returns the verdict for every analyzed package, keyed by name.
func (r *Report) Verdicts() map[string]Verdict {
	m := make(map[string]Verdict, r.TotalPackages)
	for _, pa := range r.SafeToMigrate {
		m[pa.Name] = VerdictSafe
	}
	for _, pa := range r.Risky {
		m[pa.Name] = VerdictRisky
	}
	for _, pa := range r.KeepInHomebrew {
		m[pa.Name] = VerdictKeep
	}
	return m
}

// WriteJSON encodes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
