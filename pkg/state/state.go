// Package state persists migration progress between runs.
//
// State is stored as a single JSON file so that migrate, status, and
// cleanup agree on which packages have already moved to Zerobrew. Writes
// go through a temp file and rename so an interrupted run never leaves a
// truncated state file behind.
package state

import (
	"sort"
	"time"
)

// Record describes one successfully migrated package.
type Record struct {
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	RunID      string    `json:"run_id"`
	MigratedAt time.Time `json:"migrated_at"`
}

// Failure describes one package whose install failed.
type Failure struct {
	Name     string    `json:"name"`
	Reason   string    `json:"reason"`
	RunID    string    `json:"run_id"`
	FailedAt time.Time `json:"failed_at"`
}

// State is the full persisted migration state.
type State struct {
	Migrated  []Record  `json:"migrated"`
	Failed    []Failure `json:"failed"`
	UpdatedAt time.Time `json:"updated_at"`

	// HomebrewPrefix is the installation prefix detected on the last
	// migrate run, e.g. /opt/homebrew. Cleanup and status use it to
	// point at the right Homebrew installation.
	HomebrewPrefix string `json:"homebrew_prefix,omitempty"`
}

// IsMigrated reports whether a package was recorded as migrated.
func (s *State) IsMigrated(name string) bool {
	for _, r := range s.Migrated {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AddMigrated records a successful migration. Re-migrating a package
// replaces its earlier record.
func (s *State) AddMigrated(rec Record) {
	s.remove(rec.Name)
	s.Migrated = append(s.Migrated, rec)
	sort.Slice(s.Migrated, func(i, j int) bool {
		return s.Migrated[i].Name < s.Migrated[j].Name
	})
}

// AddFailure records a failed install. A later success clears the failure.
func (s *State) AddFailure(f Failure) {
	s.Failed = append(s.Failed, f)
}

// Forget drops a package from both lists. Used by cleanup once the
// Homebrew copy has been uninstalled and the record no longer matters.
func (s *State) Forget(name string) {
	s.remove(name)
}

func (s *State) remove(name string) {
	migrated := s.Migrated[:0]
	for _, r := range s.Migrated {
		if r.Name != name {
			migrated = append(migrated, r)
		}
	}
	s.Migrated = migrated

	failed := s.Failed[:0]
	for _, f := range s.Failed {
		if f.Name != name {
			failed = append(failed, f)
		}
	}
	s.Failed = failed
}
