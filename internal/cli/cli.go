// Package cli implements the zb-migrate command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zerobrew/zb-migrate/pkg/brew"
	"github.com/zerobrew/zb-migrate/pkg/buildinfo"
	"github.com/zerobrew/zb-migrate/pkg/cache"
	"github.com/zerobrew/zb-migrate/pkg/config"
	"github.com/zerobrew/zb-migrate/pkg/migrate"
	"github.com/zerobrew/zb-migrate/pkg/state"
	"github.com/zerobrew/zb-migrate/pkg/zerobrew"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "zb-migrate"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "zb-migrate",
		Short:        "Migrate packages from Homebrew to Zerobrew",
		Long:         `zb-migrate analyzes your Homebrew installation, classifies packages by migration risk, and moves the safe ones to Zerobrew in dependency order.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/zb-migrate/config.toml)")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.cleanupCommand())
	root.AddCommand(c.outdatedCommand())
	root.AddCommand(c.upgradeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Collaborator Factories
// =============================================================================

// loadConfig reads the config file named by --config, or the default
// location when the flag is unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newBrewClient creates a brew client for CLI use.
func (c *CLI) newBrewClient(cfg *config.Config, noCache bool) *brew.Client {
	return brew.NewClient(brew.Options{
		Cache:  newCache(cfg, noCache),
		Logger: c.Logger.Warnf,
	})
}

// newMigrator wires up a migrator from config.
func (c *CLI) newMigrator(cfg *config.Config) (*migrate.Migrator, *state.FileStore, error) {
	store, err := state.NewFileStore(cfg.Paths.State)
	if err != nil {
		return nil, nil, err
	}
	installer := zerobrew.NewInstaller(zerobrew.Options{Command: cfg.Installer.Command})
	return migrate.NewMigrator(installer, store, cfg.BuildDenylist()), store, nil
}

func newCache(cfg *config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir := cfg.Paths.Cache
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/zb-migrate/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
