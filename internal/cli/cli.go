// Package cli implements the floattree command-line interface.
//
// This package provides commands for building hierarchies of floating
// elements, toggling their open state with cascade coordination, rendering
// them as diagrams, and serving them over HTTP. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - init/add/remove/move: Build and edit stored hierarchies
//   - open/close: Toggle nodes with full cascade semantics
//   - show: Print a hierarchy with its open state
//   - render: Generate DOT, SVG, or PNG diagrams
//   - serve: Run the HTTP API
//   - browse: Interactively explore and toggle a hierarchy
//   - cache: Manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sherif414/floattree/pkg/buildinfo"
	"github.com/sherif414/floattree/pkg/cache"
	"github.com/sherif414/floattree/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "floattree"

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

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Floattree coordinates nested floating UI hierarchies",
		Long:         `Floattree manages trees of floating UI elements (menus, submenus, popovers) with reactive open/close coordination: closing a parent cascades to its open descendants, and the topmost open elements are always known.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/floattree/config.toml)")

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.openCommand())
	root.AddCommand(c.closeCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// newStore opens the snapshot store selected by the loaded config.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cmd.Context(), cfg, c.Logger)
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/floattree/).
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

// configDir returns the config directory using XDG standard (~/.config/floattree/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig resolves and loads the config file, falling back to defaults
// when no file exists.
func (c *CLI) loadConfig() (Config, error) {
	path := c.ConfigPath
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
