// Package pipeline resolves and installs archives by running an ordered list
// of strategies over a shrinking pending set.
//
// # Architecture
//
// The standard list has five strategies:
//
//  1. Direct install: install every pending archive as-is
//  2. Path inference: guess group and artifact from member paths
//  3. Manifest extraction: read coordinates from META-INF/MANIFEST.MF
//  4. Dummy fill: default every still-missing field
//  5. Metadata install: install complete archives with explicit coordinates
//
// Install strategies shrink the pending set by the archives they installed.
// Metadata strategies only write to the shared [metadata.Store]. A failure on
// one archive is logged and never stops the run.
//
// # Usage
//
//	strategies := pipeline.Standard(pipeline.Collaborators{
//	    Installer: install.NewMaven(install.Options{}, logger),
//	    Lister:    inspector,
//	    Manifests: inspector,
//	    Logger:    logger,
//	})
//	result, err := pipeline.NewRunner(logger, strategies...).Run(ctx, archives)
//	for _, a := range result.Unresolved {
//	    logger.Warn("unresolved", "archive", a)
//	}
package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarinstall/pkg/infer"
	"github.com/matzehuels/jarinstall/pkg/install"
	"github.com/matzehuels/jarinstall/pkg/metadata"
)

// Lister returns the member paths of an archive.
type Lister interface {
	Members(ctx context.Context, archive string) ([]string, error)
}

// ManifestReader returns the manifest text of an archive.
type ManifestReader interface {
	Manifest(ctx context.Context, archive string) (string, error)
}

// State is the mutable state threaded through every strategy of one run.
type State struct {
	// All is every discovered archive in discovery order. It never changes.
	All []string
	// Pending is the subset of All not yet installed, in discovery order.
	Pending []string
	// Store accumulates metadata for every archive in All.
	Store *metadata.Store
}

// NewState creates a state with every archive pending and an empty store.
func NewState(archives []string) *State {
	all := dedupe(archives)
	pending := make([]string, len(all))
	copy(pending, all)
	return &State{All: all, Pending: pending, Store: metadata.NewStore()}
}

// shrink removes resolved archives from Pending in a single step.
func (s *State) shrink(resolved []string) {
	if len(resolved) == 0 {
		return
	}
	done := make(map[string]bool, len(resolved))
	for _, a := range resolved {
		done[a] = true
	}
	kept := make([]string, 0, len(s.Pending))
	for _, a := range s.Pending {
		if !done[a] {
			kept = append(kept, a)
		}
	}
	s.Pending = kept
}

// Collaborators are the external capabilities the standard strategies use.
type Collaborators struct {
	Installer  install.Installer
	Lister     Lister
	Manifests  ManifestReader
	Inferencer infer.Inferencer
	Logger     *log.Logger
}

// Standard returns the five strategies in their canonical order.
func Standard(c Collaborators) []Strategy {
	logger := orDefault(c.Logger)
	return []Strategy{
		&DirectInstall{Installer: c.Installer, Logger: logger},
		&PathInference{Lister: c.Lister, Inferencer: c.Inferencer, Logger: logger},
		&ManifestExtraction{Reader: c.Manifests, Logger: logger},
		&DummyFill{Logger: logger},
		&MetadataInstall{Installer: c.Installer, Logger: logger},
	}
}

// MetadataOnly returns the strategies that gather metadata without
// installing anything.
func MetadataOnly(c Collaborators) []Strategy {
	logger := orDefault(c.Logger)
	return []Strategy{
		&PathInference{Lister: c.Lister, Inferencer: c.Inferencer, Logger: logger},
		&ManifestExtraction{Reader: c.Manifests, Logger: logger},
		&DummyFill{Logger: logger},
	}
}

func orDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
