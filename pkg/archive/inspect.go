package archive

import (
	"archive/zip"
	"context"
	"encoding/json"
	"os"

	"github.com/matzehuels/jarinstall/pkg/cache"
	"github.com/matzehuels/jarinstall/pkg/errors"
	"github.com/matzehuels/jarinstall/pkg/manifest"
	"github.com/matzehuels/jarinstall/pkg/observability"
)

// Inspection is what the pipeline reads from one archive.
type Inspection struct {
	Members     []string `json:"members"`
	Manifest    string   `json:"manifest,omitempty"`
	HasManifest bool     `json:"has_manifest"`
}

// Inspector reads archive listings and manifests, optionally through a cache.
type Inspector struct {
	Cache cache.Cache
	Keyer cache.Keyer
}

// NewInspector creates an inspector. A nil cache disables caching and a nil
// keyer selects the default keyer.
func NewInspector(c cache.Cache, keyer cache.Keyer) *Inspector {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Inspector{Cache: c, Keyer: keyer}
}

// Inspect returns the member list and manifest of the archive at path.
func (in *Inspector) Inspect(ctx context.Context, path string) (*Inspection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveUnreadable, err, "stat %s", path)
	}
	key := in.Keyer.InspectionKey(path, info.Size(), info.ModTime())

	if data, hit, err := in.Cache.Get(ctx, key); err == nil && hit {
		var cached Inspection
		if json.Unmarshal(data, &cached) == nil {
			observability.Cache().OnCacheHit(ctx, "inspect")
			return &cached, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "inspect")

	result, err := inspectFile(path)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if in.Cache.Set(ctx, key, data, cache.TTLInspection) == nil {
			observability.Cache().OnCacheSet(ctx, "inspect", len(data))
		}
	}
	return result, nil
}

// Members returns the archive's internal file paths.
func (in *Inspector) Members(ctx context.Context, path string) ([]string, error) {
	result, err := in.Inspect(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Members, nil
}

// Manifest returns the archive's manifest text. An archive without a
// manifest yields an ErrCodeManifestNotFound error.
func (in *Inspector) Manifest(ctx context.Context, path string) (string, error) {
	result, err := in.Inspect(ctx, path)
	if err != nil {
		return "", err
	}
	if !result.HasManifest {
		return "", errors.New(errors.ErrCodeManifestNotFound, "%s has no %s", path, manifest.Path)
	}
	return result.Manifest, nil
}

func inspectFile(path string) (*Inspection, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeArchiveUnreadable, err, "open %s", path)
	}
	defer rc.Close()

	result := &Inspection{Members: memberNames(&rc.Reader)}
	if f := findEntry(&rc.Reader, manifest.Path); f != nil {
		data, err := readEntry(f, maxManifestSize)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeArchiveUnreadable, err, "read manifest of %s", path)
		}
		result.Manifest = string(data)
		result.HasManifest = true
	}
	return result, nil
}
