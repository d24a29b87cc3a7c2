// Package cli implements the jarinstall command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarinstall/pkg/archive"
	"github.com/matzehuels/jarinstall/pkg/buildinfo"
	"github.com/matzehuels/jarinstall/pkg/cache"
	"github.com/matzehuels/jarinstall/pkg/install"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "jarinstall"
)

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

	// configPath is set by the persistent --config flag.
	configPath string

	// newInstaller builds the install collaborator; tests swap it out.
	newInstaller func(opts install.Options, logger *log.Logger) install.Installer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		newInstaller: func(opts install.Options, logger *log.Logger) install.Installer {
			return install.NewMaven(opts, logger)
		},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "jarinstall",
		Short: "jarinstall installs loose JAR files into the local Maven repository",
		Long: `jarinstall finds JAR files under the given paths, works out Maven coordinates
for each one from its manifest and internal layout, and installs them into the
local Maven repository. Loose .java files that are not packaged in any JAR are
staged for a later build.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints errors and maps exit status
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+ConfigFileName+")")

	// Register all subcommands
	root.AddCommand(c.installCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Inspector Factory
// =============================================================================

// newInspector creates an archive inspector backed by the on-disk cache.
func (c *CLI) newInspector(noCache bool) (*archive.Inspector, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	// Entries written by another build are ignored.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return archive.NewInspector(store, keyer), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/jarinstall/).
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
