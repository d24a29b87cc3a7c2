package pipeline

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarinstall/pkg/infer"
	"github.com/matzehuels/jarinstall/pkg/install"
	"github.com/matzehuels/jarinstall/pkg/manifest"
	"github.com/matzehuels/jarinstall/pkg/metadata"
)

// Strategy is one stage of the run. Resolve returns the pending archives it
// installed; metadata-only strategies return nil and communicate through
// st.Store.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, st *State) []string
}

// DummyVersion is the version given to archives with no version candidate.
const DummyVersion = "1.0"

// DirectInstall installs every pending archive without explicit coordinates.
type DirectInstall struct {
	Installer install.Installer
	Logger    *log.Logger
}

func (*DirectInstall) Name() string { return "direct-install" }

func (s *DirectInstall) Resolve(ctx context.Context, st *State) []string {
	var installed []string
	for _, a := range st.Pending {
		if err := s.Installer.Install(ctx, a, nil); err != nil {
			// Archives without embedded coordinates are expected to fail here.
			s.Logger.Debug("direct install failed", "archive", a, "err", err)
			continue
		}
		s.Logger.Debug("installed", "archive", a)
		installed = append(installed, a)
	}
	return installed
}

// PathInference merges group and artifact guesses derived from member paths.
type PathInference struct {
	Lister     Lister
	Inferencer infer.Inferencer
	Logger     *log.Logger
}

func (*PathInference) Name() string { return "path-inference" }

func (s *PathInference) Resolve(ctx context.Context, st *State) []string {
	for _, a := range st.Pending {
		members, err := s.Lister.Members(ctx, a)
		if err != nil {
			s.Logger.Warn("cannot list archive", "archive", a, "err", err)
			continue
		}
		written := st.Store.Merge(a, s.Inferencer.Candidates(members), false)
		s.Logger.Debug("inferred from paths", "archive", a, "fields", written)
	}
	return nil
}

// ManifestExtraction merges coordinates read from the archive manifest.
type ManifestExtraction struct {
	Reader ManifestReader
	Logger *log.Logger
}

func (*ManifestExtraction) Name() string { return "manifest-extraction" }

func (s *ManifestExtraction) Resolve(ctx context.Context, st *State) []string {
	for _, a := range st.Pending {
		text, err := s.Reader.Manifest(ctx, a)
		if err != nil {
			s.Logger.Warn("manifest unavailable", "archive", a, "err", err)
			text = ""
		}
		written := st.Store.Merge(a, manifest.Extract(text), false)
		s.Logger.Debug("extracted from manifest", "archive", a, "fields", written)
	}
	return nil
}

// DummyFill gives every field still missing on any discovered archive a
// synthetic value: DummyVersion for the version and the archive's base name
// for everything else. Present fields are never touched.
type DummyFill struct {
	Logger *log.Logger
}

func (*DummyFill) Name() string { return "dummy-fill" }

func (s *DummyFill) Resolve(_ context.Context, st *State) []string {
	for _, a := range st.All {
		base := filepath.Base(a)
		for _, f := range metadata.Fields {
			value := base
			if f == metadata.FieldVersion {
				value = DummyVersion
			}
			if st.Store.Fill(a, f, value) {
				s.Logger.Debug("filled default", "archive", a, "field", f, "value", value)
			}
		}
	}
	return nil
}

// MetadataInstall installs pending archives whose record is complete, passing
// the accumulated coordinates explicitly.
type MetadataInstall struct {
	Installer install.Installer
	Logger    *log.Logger
}

func (*MetadataInstall) Name() string { return "metadata-install" }

func (s *MetadataInstall) Resolve(ctx context.Context, st *State) []string {
	var installed []string
	for _, a := range st.Pending {
		rec := st.Store.Get(a)
		if !rec.Complete() {
			continue
		}
		if err := s.Installer.Install(ctx, a, rec); err != nil {
			s.Logger.Warn("install failed", "archive", a, "coords", rec.Coordinate(), "err", err)
			continue
		}
		s.Logger.Debug("installed", "archive", a, "coords", rec.Coordinate())
		installed = append(installed, a)
	}
	return installed
}
