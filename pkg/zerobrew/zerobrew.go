// Package zerobrew installs packages through the zb command line tool.
package zerobrew

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/zerobrew/zb-migrate/pkg/errors"
)

// Runner executes an external command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Installer runs zb installs. The zero value is not usable; construct with
// NewInstaller.
type Installer struct {
	command string
	run     Runner
}

// Options configures an Installer.
type Options struct {
	Command string // Installer binary (default "zb")
	Runner  Runner // Command executor (default: os/exec)
}

// NewInstaller creates a zerobrew installer.
func NewInstaller(opts Options) *Installer {
	if opts.Command == "" {
		opts.Command = "zb"
	}
	if opts.Runner == nil {
		opts.Runner = execRunner
	}
	return &Installer{command: opts.Command, run: opts.Runner}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Install installs a single package. The returned error carries the tail of
// the installer output so failures are actionable without rerunning zb.
func (i *Installer) Install(ctx context.Context, name string) error {
	out, err := i.run(ctx, i.command, "install", name)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	reason := lastLine(string(out))
	if reason == "" {
		return errors.Wrap(errors.ErrCodeInstallFailed, err, "failed to install %s", name)
	}
	return errors.Wrap(errors.ErrCodeInstallFailed, err, "failed to install %s: %s", name, reason)
}

// Available reports whether the installer binary can be invoked at all.
func (i *Installer) Available(ctx context.Context) bool {
	_, err := i.run(ctx, i.command, "--version")
	return err == nil
}

// lastLine returns the final non-blank line of command output, which is
// where zb prints its error summary.
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
