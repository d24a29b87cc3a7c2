// Package install runs the external package manager that installs an archive
// into the local repository.
//
// The pipeline only needs a success or failure signal per archive, so the
// contract is the [Installer] interface. [Maven] shells out to
// `mvn install-file`; tests and dry runs substitute a [Func].
package install

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarinstall/pkg/errors"
	"github.com/matzehuels/jarinstall/pkg/metadata"
	"github.com/matzehuels/jarinstall/pkg/observability"
)

// Defaults for the Maven invocation.
const (
	DefaultExecutable = "mvn"
	DefaultPlugin     = "org.apache.maven.plugins:maven-install-plugin:3.0.0-M1"
)

// DefaultJVMFlags are passed after the goal.
var DefaultJVMFlags = []string{
	"-DtrimStackTrace=false",
	"-DcreateChecksum=true",
	"-Dstyle.color=never",
}

// Installer installs one archive. A nil coords asks the package manager to
// use whatever coordinates the archive already embeds.
type Installer interface {
	Install(ctx context.Context, archive string, coords *metadata.Record) error
}

// Func adapts a function to the Installer interface.
type Func func(ctx context.Context, archive string, coords *metadata.Record) error

// Install calls f.
func (f Func) Install(ctx context.Context, archive string, coords *metadata.Record) error {
	return f(ctx, archive, coords)
}

// Options configures the Maven invocation.
type Options struct {
	Executable string   // binary name or path, default "mvn"
	Plugin     string   // install plugin coordinate, default DefaultPlugin
	Flags      []string // passed before the goal
	JVMFlags   []string // passed after the goal, default DefaultJVMFlags
	Env        []string // extra KEY=VALUE pairs appended to the environment

	Stdout io.Writer // child stdout, discarded when nil
	Stderr io.Writer // child stderr, discarded when nil
}

// Maven installs archives with maven-install-plugin's install-file goal.
type Maven struct {
	opts   Options
	logger *log.Logger
}

// NewMaven creates a Maven installer, filling unset options with defaults.
func NewMaven(opts Options, logger *log.Logger) *Maven {
	if opts.Executable == "" {
		opts.Executable = DefaultExecutable
	}
	if opts.Plugin == "" {
		opts.Plugin = DefaultPlugin
	}
	if opts.JVMFlags == nil {
		opts.JVMFlags = DefaultJVMFlags
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Maven{opts: opts, logger: logger}
}

// Args returns the command-line arguments for installing archive.
func (m *Maven) Args(archive string, coords *metadata.Record) []string {
	args := append([]string{}, m.opts.Flags...)
	args = append(args, m.opts.Plugin+":install-file", "-Dfile="+archive)
	if coords != nil {
		args = append(args,
			"-DgroupId="+coords.GroupID,
			"-DartifactId="+coords.ArtifactID,
			"-Dversion="+coords.Version,
			"-Dpackaging=jar",
		)
	}
	return append(args, m.opts.JVMFlags...)
}

// Install runs Maven and waits for it. A non-zero exit status is returned as
// an ErrCodeInstallFailed error.
func (m *Maven) Install(ctx context.Context, archive string, coords *metadata.Record) error {
	args := m.Args(archive, coords)
	m.logger.Debug("running command", "cmd", m.opts.Executable+" "+strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, m.opts.Executable, args...)
	cmd.Stdout = m.opts.Stdout
	cmd.Stderr = m.opts.Stderr
	if len(m.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), m.opts.Env...)
	}

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInstallFailed, err, "install %s", archive)
	}
	observability.Pipeline().OnInstall(ctx, archive, coords != nil, time.Since(start), err)
	return err
}

var (
	_ Installer = (*Maven)(nil)
	_ Installer = Func(nil)
)
