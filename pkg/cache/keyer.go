package cache

import "time"

// inspectionVersion is bumped whenever the cached inspection layout changes.
const inspectionVersion = "v1"

// Keyer builds cache keys.
type Keyer interface {
	// InspectionKey identifies one state of an archive on disk.
	InspectionKey(path string, size int64, modTime time.Time) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// InspectionKey hashes the archive's path, size and modification time.
func (DefaultKeyer) InspectionKey(path string, size int64, modTime time.Time) string {
	return hashKey("inspect:"+inspectionVersion, path, size, modTime.UTC().UnixNano())
}

// ScopedKeyer prefixes every key from an inner keyer, keeping caches of
// different tools or users apart in one directory.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// InspectionKey returns the inner key with the scope prefix.
func (k *ScopedKeyer) InspectionKey(path string, size int64, modTime time.Time) string {
	return k.prefix + k.inner.InspectionKey(path, size, modTime)
}
