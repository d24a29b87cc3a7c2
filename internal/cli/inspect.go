package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarinstall/pkg/archive"
	"github.com/matzehuels/jarinstall/pkg/infer"
	"github.com/matzehuels/jarinstall/pkg/metadata"
	"github.com/matzehuels/jarinstall/pkg/pipeline"
)

// inspectEntry is one archive in the JSON output of inspect.
type inspectEntry struct {
	Archive  string           `json:"archive"`
	Complete bool             `json:"complete"`
	Record   *metadata.Record `json:"record,omitempty"`
	PURL     string           `json:"purl,omitempty"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var noCache, asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <path>...",
		Short: "Show the coordinates install would use, without installing",
		Long: `Inspect runs the metadata strategies of install (path inference, manifest
extraction and placeholder fill) and prints the resulting coordinates of
every JAR. Maven is never invoked, so JARs that would install as-is are
shown with the coordinates jarinstall would fall back to.`,
		Example: `  jarinstall inspect ./lib
  jarinstall inspect --json ./lib > coords.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args, noCache, asJSON)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the archive inspection cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

// runInspect executes the inspect command.
func (c *CLI) runInspect(ctx context.Context, roots []string, noCache, asJSON bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	logger := runLogger(c.Logger)

	disc, err := archive.NewScanner(logger).Discover(ctx, roots)
	if err != nil {
		return err
	}
	inspector, err := c.newInspector(noCache)
	if err != nil {
		return err
	}

	strategies := pipeline.MetadataOnly(pipeline.Collaborators{
		Lister:     inspector,
		Manifests:  inspector,
		Inferencer: infer.Inferencer{Threshold: cfg.Inference.CommonalityThreshold},
		Logger:     logger,
	})
	result, err := pipeline.NewRunner(logger, strategies...).Run(ctx, disc.Archives)
	if err != nil {
		return err
	}

	entries := make([]inspectEntry, 0, len(disc.Archives))
	for _, a := range disc.Archives {
		rec := result.Store.Get(a)
		e := inspectEntry{Archive: a, Complete: rec.Complete(), Record: rec}
		if e.Complete {
			e.PURL = rec.PURL()
		}
		entries = append(entries, e)
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	printInspection(entries)
	return nil
}

func printInspection(entries []inspectEntry) {
	complete := 0
	for _, e := range entries {
		printArchiveHeader(e.Archive, e.Complete)
		for _, f := range metadata.Fields {
			value := "-"
			if e.Record.Has(f) {
				value = e.Record.Get(f)
			}
			printKeyValue(string(f), value)
		}
		if e.Complete {
			complete++
			printPURL(e.PURL)
		}
		printNewline()
	}
	printInfo("%d/%d archives have complete coordinates", complete, len(entries))
}
