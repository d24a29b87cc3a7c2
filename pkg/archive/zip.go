package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	// maxManifestSize bounds how much of a manifest is read.
	maxManifestSize = 1 << 20

	// maxNestedSize bounds the size of a nested archive read into memory.
	maxNestedSize = 256 << 20
)

// memberNames returns the non-directory entry names of r in central
// directory order.
func memberNames(r *zip.Reader) []string {
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// findEntry returns the entry named name, compared case-insensitively.
func findEntry(r *zip.Reader, name string) *zip.File {
	for _, f := range r.File {
		if strings.EqualFold(f.Name, name) {
			return f
		}
	}
	return nil
}

// readEntry reads f fully, failing when it exceeds limit bytes.
func readEntry(f *zip.File, limit int64) ([]byte, error) {
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("zip entry %s too large (%d bytes)", f.Name, f.UncompressedSize64)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("zip entry %s too large", f.Name)
	}
	return data, nil
}

// openNested opens an archive stored as an entry of another archive.
func openNested(f *zip.File) (*zip.Reader, error) {
	data, err := readEntry(f, maxNestedSize)
	if err != nil {
		return nil, err
	}
	return zip.NewReader(bytes.NewReader(data), int64(len(data)))
}
