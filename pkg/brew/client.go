package brew

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/zerobrew/zb-migrate/pkg/cache"
	"github.com/zerobrew/zb-migrate/pkg/errors"
	"github.com/zerobrew/zb-migrate/pkg/graph"
	"github.com/zerobrew/zb-migrate/pkg/observability"
)

// Runner executes an external command and returns its stdout.
// It exists so tests can substitute canned output for real brew invocations.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options configures a brew Client.
type Options struct {
	Runner   Runner               // Command executor (default: os/exec)
	Cache    cache.Cache          // Cache for tap lookups (default: disabled)
	CacheTTL time.Duration        // Lifetime of cached lookups (default: cache.DefaultTTL)
	Logger   func(string, ...any) // Warning callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Runner == nil {
		opts.Runner = execRunner
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.DefaultTTL
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Client queries the host Homebrew installation.
type Client struct {
	opts Options
}

// NewClient creates a brew client.
func NewClient(opts Options) *Client {
	return &Client{opts: opts.WithDefaults()}
}

// runBrew invokes brew with the configured runner and fires the command
// hook with the elapsed time.
func (c *Client) runBrew(ctx context.Context, args ...string) ([]byte, error) {
	start := time.Now()
	out, err := c.opts.Runner(ctx, "brew", args...)
	observability.Brew().OnCommand(ctx, args, time.Since(start), err)
	return out, err
}

// execRunner runs the command for real, returning stdout.
// On a non-zero exit the error carries trimmed stderr for diagnostics.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return stdout.Bytes(), err
		}
		return stdout.Bytes(), errors.Wrap(errors.ErrCodeBrewCommand, err, "%s", msg)
	}
	return stdout.Bytes(), nil
}

// Prefix detects the Homebrew installation prefix via `brew --prefix`.
func (c *Client) Prefix(ctx context.Context) (string, error) {
	out, err := c.runBrew(ctx, "--prefix")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBrewUnavailable, err,
			"failed to run 'brew --prefix': is Homebrew installed? (see https://brew.sh)")
	}
	return strings.TrimSpace(string(out)), nil
}

// Formulae lists installed formulae in fast mode: name, version, and pin
// state only. Dependencies and taps are left empty; use FormulaeDetailed
// when they are needed.
func (c *Client) Formulae(ctx context.Context) ([]graph.Package, error) {
	out, err := c.runBrew(ctx, "list", "--formula", "--versions")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBrewCommand, err,
			"failed to list Homebrew formulae ('brew list --formula' failed; try 'brew doctor')")
	}

	pinned, err := c.pinned(ctx)
	if err != nil {
		c.opts.Logger("pinned lookup failed: %v", err)
		pinned = map[string]bool{}
	}

	var pkgs []graph.Package
	for _, nv := range parseVersions(string(out)) {
		pkgs = append(pkgs, graph.Package{
			Name:    nv.name,
			Version: nv.version,
			Pinned:  pinned[nv.name],
		})
	}
	return pkgs, nil
}

// Casks lists installed casks. A failing invocation (e.g. no casks
// installed) yields an empty list rather than an error.
func (c *Client) Casks(ctx context.Context) ([]graph.Package, error) {
	out, err := c.runBrew(ctx, "list", "--cask", "--versions")
	if err != nil {
		return nil, nil
	}

	var pkgs []graph.Package
	for _, nv := range parseVersions(string(out)) {
		pkgs = append(pkgs, graph.Package{
			Name:    nv.name,
			Version: nv.version,
			IsCask:  true,
		})
	}
	return pkgs, nil
}

// FormulaeDetailed lists installed formulae with dependency lists and taps
// filled in. This is the slow path (two brew calls per formula, taps served
// from cache when possible); onProgress, if non-nil, is invoked once per
// formula as it completes.
func (c *Client) FormulaeDetailed(ctx context.Context, onProgress func(done, total int, name string)) ([]graph.Package, error) {
	pkgs, err := c.Formulae(ctx)
	if err != nil {
		return nil, err
	}

	for i := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkgs[i].Dependencies = c.dependencies(ctx, pkgs[i].Name)
		pkgs[i].Tap = c.tap(ctx, pkgs[i].Name)
		if onProgress != nil {
			onProgress(i+1, len(pkgs), pkgs[i].Name)
		}
	}
	return pkgs, nil
}

// Uninstall removes a formula from Homebrew, ignoring dependency checks.
// Used by cleanup after a package has been migrated.
func (c *Client) Uninstall(ctx context.Context, name string) error {
	if _, err := c.runBrew(ctx, "uninstall", "--ignore-dependencies", name); err != nil {
		return errors.Wrap(errors.ErrCodeBrewCommand, err, "failed to uninstall %s", name)
	}
	return nil
}

// pinned returns the set of pinned formula names in one brew call.
func (c *Client) pinned(ctx context.Context) (map[string]bool, error) {
	out, err := c.runBrew(ctx, "list", "--pinned")
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			set[name] = true
		}
	}
	return set, nil
}

// dependencies returns the installed direct dependencies of a formula.
// Failures degrade to an empty list; a missing dependency list only means
// the package orders later than strictly necessary.
func (c *Client) dependencies(ctx context.Context, name string) []string {
	out, err := c.runBrew(ctx, "deps", "--installed", name)
	if err != nil {
		c.opts.Logger("deps lookup failed: %s: %v", name, err)
		return nil
	}
	var deps []string
	for _, line := range strings.Split(string(out), "\n") {
		if dep := strings.TrimSpace(line); dep != "" {
			deps = append(deps, dep)
		}
	}
	return deps
}

// tap returns the originating tap of a formula, or "" for homebrew/core.
// Results are cached: `brew info --json=v2` is by far the slowest query.
func (c *Client) tap(ctx context.Context, name string) string {
	key := cache.Key("tap", name)
	if data, hit, _ := c.opts.Cache.Get(ctx, key); hit {
		observability.Brew().OnCacheHit(ctx, name)
		return string(data)
	}

	out, err := c.runBrew(ctx, "info", "--json=v2", name)
	if err != nil {
		c.opts.Logger("tap lookup failed: %s: %v", name, err)
		return ""
	}

	tap := parseTap(out)
	_ = c.opts.Cache.Set(ctx, key, []byte(tap), c.opts.CacheTTL)
	return tap
}
