package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarinstall/pkg/archive"
	"github.com/matzehuels/jarinstall/pkg/errors"
	"github.com/matzehuels/jarinstall/pkg/infer"
	"github.com/matzehuels/jarinstall/pkg/pipeline"
	"github.com/matzehuels/jarinstall/pkg/reconcile"
)

// installOpts holds the flags of the install command.
type installOpts struct {
	stagingDir  string
	mvn         string
	noCache     bool
	skipSources bool
}

// installCommand creates the install command.
func (c *CLI) installCommand() *cobra.Command {
	var opts installOpts

	cmd := &cobra.Command{
		Use:   "install <path>...",
		Short: "Resolve coordinates for every JAR under the paths and install them",
		Long: `Install walks the given directories (or JAR files) and installs every JAR
it finds into the local Maven repository.

JARs that already embed coordinates are installed as-is. For the rest,
coordinates are guessed from the package layout and META-INF/MANIFEST.MF,
and any field that is still missing gets a placeholder. Loose .java files
not packaged in any JAR are copied, per src directory, into the staging
directory.

The exit status is the number of archives and source files that could not
be handled (capped at 125).`,
		Example: `  jarinstall install ./lib
  jarinstall install --staging-dir build/external ./lib ./vendor/legacy.jar
  jarinstall install --mvn ./mvnw --skip-sources .`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInstall(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.stagingDir, "staging-dir", "", "directory receiving unpackaged src trees (default from config, else ./external)")
	cmd.Flags().StringVar(&opts.mvn, "mvn", "", "Maven executable (default from config, else mvn)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the archive inspection cache")
	cmd.Flags().BoolVar(&opts.skipSources, "skip-sources", false, "do not stage loose .java files")

	return cmd
}

// runInstall executes the install command.
func (c *CLI) runInstall(ctx context.Context, roots []string, opts installOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.stagingDir != "" {
		cfg.StagingDir = opts.stagingDir
	}
	if opts.mvn != "" {
		cfg.Maven.Executable = opts.mvn
	}

	logger := runLogger(c.Logger)

	disc, err := archive.NewScanner(logger).Discover(ctx, roots)
	if err != nil {
		return err
	}
	inspector, err := c.newInspector(opts.noCache)
	if err != nil {
		return err
	}

	mavenOpts := cfg.mavenOptions()
	if c.Logger.GetLevel() <= log.DebugLevel {
		mavenOpts.Stdout = os.Stderr
		mavenOpts.Stderr = os.Stderr
	}
	strategies := pipeline.Standard(pipeline.Collaborators{
		Installer:  c.newInstaller(mavenOpts, logger),
		Lister:     inspector,
		Manifests:  inspector,
		Inferencer: infer.Inferencer{Threshold: cfg.Inference.CommonalityThreshold},
		Logger:     logger,
	})

	prog := newProgress(logger)
	result, err := pipeline.NewRunner(logger, strategies...).Run(ctx, disc.Archives)
	if err != nil {
		return err
	}
	prog.done("resolution finished")

	var plan *reconcile.Plan
	var staged *reconcile.Outcome
	if !opts.skipSources {
		plan = reconcile.Build(disc.LooseSources, disc.PackagedSources)
		logger.Info("found unpackaged sources", "files", len(plan.Unique), "src_dirs", len(plan.Groups))
		staged, err = reconcile.NewStager(cfg.StagingDir, logger).Apply(ctx, plan)
		if err != nil {
			return err
		}
	}

	return reportInstall(logger, result, plan, staged)
}

// reportInstall logs one warning per unresolved item, prints the summary and
// returns an UnresolvedError when anything was left over.
func reportInstall(logger *log.Logger, result *pipeline.Result, plan *reconcile.Plan, staged *reconcile.Outcome) error {
	for i, a := range result.Unresolved {
		logger.Warnf("%d/%d: unable to install %s, install it manually", i+1, len(result.Unresolved), a)
	}

	var unresolvedSources []string
	unique := 0
	if plan != nil {
		unique = len(plan.Unique)
		unresolvedSources = append(unresolvedSources, plan.Unresolved...)
		unresolvedSources = append(unresolvedSources, staged.Failed...)
	}
	for i, f := range unresolvedSources {
		logger.Warnf("%d/%d: no src directory staged for %s, copy it manually", i+1, len(unresolvedSources), f)
	}

	total := result.Total()
	summary := "%d/%d archives and %d/%d additional source files installed successfully"
	args := []any{total - len(result.Unresolved), total, unique - len(unresolvedSources), unique}
	if len(result.Unresolved) == 0 && len(unresolvedSources) == 0 {
		printSuccess(summary, args...)
		return nil
	}
	printWarning(summary, args...)
	return &errors.UnresolvedError{
		Archives: len(result.Unresolved),
		Sources:  len(unresolvedSources),
	}
}
