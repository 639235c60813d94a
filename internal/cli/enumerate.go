package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/zerobrew/zb-migrate/pkg/brew"
	"github.com/zerobrew/zb-migrate/pkg/graph"
	"github.com/zerobrew/zb-migrate/pkg/observability"
)

// enumerate lists installed packages. detailed fills in dependencies and
// taps, which takes two extra brew calls per formula on a cold cache.
func (c *CLI) enumerate(ctx context.Context, client *brew.Client, detailed, includeCasks bool) ([]graph.Package, error) {
	logger := loggerFromContext(ctx)
	observability.Analysis().OnEnumerateStart(ctx, detailed)
	prog := newProgress(logger)
	started := time.Now()

	var pkgs []graph.Package
	var err error
	if detailed {
		pkgs, err = client.FormulaeDetailed(ctx, func(done, total int, name string) {
			logger.Debugf("resolved %s (%d/%d)", name, done, total)
		})
	} else {
		pkgs, err = client.Formulae(ctx)
	}
	if err != nil {
		observability.Analysis().OnEnumerateComplete(ctx, 0, time.Since(started), err)
		return nil, err
	}

	if includeCasks {
		casks, err := client.Casks(ctx)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, casks...)
	}

	observability.Analysis().OnEnumerateComplete(ctx, len(pkgs), time.Since(started), nil)
	prog.done("Enumerated " + plural(len(pkgs), "package"))
	return pkgs, nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
