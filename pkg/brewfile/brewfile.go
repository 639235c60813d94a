// Package brewfile renders package lists in Brewfile format.
//
// The output round-trips through `brew bundle`, so a generated file is a
// usable backup of the Homebrew install before migration starts.
package brewfile

import (
	"fmt"
	"io"
	"sort"

	"github.com/zerobrew/zb-migrate/pkg/graph"
)

// Write renders packages as a Brewfile. Taps come first, then formulae,
// then casks, each section sorted by name.
func Write(w io.Writer, pkgs []graph.Package) error {
	taps := map[string]bool{}
	var formulae, casks []graph.Package
	for _, p := range pkgs {
		if p.Tap != "" {
			taps[p.Tap] = true
		}
		if p.IsCask {
			casks = append(casks, p)
		} else {
			formulae = append(formulae, p)
		}
	}

	tapNames := make([]string, 0, len(taps))
	for tap := range taps {
		tapNames = append(tapNames, tap)
	}
	sort.Strings(tapNames)
	sortByName(formulae)
	sortByName(casks)

	for _, tap := range tapNames {
		if _, err := fmt.Fprintf(w, "tap %q\n", tap); err != nil {
			return err
		}
	}
	for _, p := range formulae {
		if _, err := fmt.Fprintf(w, "brew %q\n", p.Name); err != nil {
			return err
		}
	}
	for _, p := range casks {
		if _, err := fmt.Fprintf(w, "cask %q\n", p.Name); err != nil {
			return err
		}
	}
	return nil
}

func sortByName(pkgs []graph.Package) {
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
}
