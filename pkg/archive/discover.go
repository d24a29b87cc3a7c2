package archive

import (
	"archive/zip"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarinstall/pkg/errors"
)

const (
	extArchive  = ".jar"
	extSource   = ".java"
	extCompiled = ".class"
)

// memberSep joins an archive path and one of its member names.
const memberSep = "!/"

// Discovery is the result of walking the input roots.
type Discovery struct {
	// Archives are absolute archive paths in first-seen order.
	Archives []string
	// LooseSources are .java files found on disk outside any archive.
	LooseSources []string
	// PackagedSources are .java and .class members of archives.
	PackagedSources []string
}

// Scanner walks directories looking for archives and sources.
type Scanner struct {
	Logger *log.Logger
}

// NewScanner creates a scanner. A nil logger falls back to log.Default().
func NewScanner(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{Logger: logger}
}

// Discover walks roots, which may be directories or archive files. Missing or
// unreadable roots are logged and skipped. An ErrCodeNoArchives error is
// returned when nothing installable was found; the partial discovery is
// still returned alongside it.
func (s *Scanner) Discover(ctx context.Context, roots []string) (*Discovery, error) {
	d := &discovery{
		archives: newOrderedSet(),
		loose:    newOrderedSet(),
		packaged: newOrderedSet(),
		visited:  make(map[string]bool),
		logger:   s.Logger,
	}

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := errors.ValidatePath(root); err != nil {
			s.Logger.Warn("skipping root", "path", root, "err", err)
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			s.Logger.Warn("skipping root", "path", root, "err", err)
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			s.Logger.Warn("skipping root", "path", root, "err", err)
			continue
		}
		if !info.IsDir() {
			d.classify(abs)
			continue
		}
		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	result := &Discovery{
		Archives:        d.archives.items,
		LooseSources:    d.loose.items,
		PackagedSources: d.packaged.items,
	}
	if len(result.Archives) == 0 {
		return result, errors.New(errors.ErrCodeNoArchives, "found no archives within %v", roots)
	}
	s.Logger.Info("discovered inputs",
		"archives", len(result.Archives),
		"loose_sources", len(result.LooseSources),
		"packaged_sources", len(result.PackagedSources))
	return result, nil
}

type discovery struct {
	archives *orderedSet
	loose    *orderedSet
	packaged *orderedSet
	visited  map[string]bool // resolved directory paths already walked
	logger   *log.Logger
}

// walk visits every file below dir. Symbolic links are followed; reported
// paths keep dir as their prefix while each real directory is read once, so
// link cycles terminate.
func (d *discovery) walk(ctx context.Context, dir string) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		d.logger.Warn("cannot resolve", "path", dir, "err", err)
		return nil
	}
	return filepath.WalkDir(resolved, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.logger.Warn("cannot read", "path", path, "err", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			if d.visited[path] {
				return filepath.SkipDir
			}
			d.visited[path] = true
			return nil
		}

		shown := path
		if rel, err := filepath.Rel(resolved, path); err == nil {
			shown = filepath.Join(dir, rel)
		}
		switch {
		case entry.Type().IsRegular():
			d.classify(shown)
		case entry.Type()&fs.ModeSymlink != 0:
			return d.follow(ctx, shown)
		}
		return nil
	})
}

func (d *discovery) follow(ctx context.Context, link string) error {
	info, err := os.Stat(link)
	if err != nil {
		d.logger.Warn("broken link", "path", link, "err", err)
		return nil
	}
	switch {
	case info.Mode().IsRegular():
		d.classify(link)
	case info.IsDir():
		return d.walk(ctx, link)
	}
	return nil
}

func (d *discovery) classify(path string) {
	switch strings.ToLower(filepath.Ext(path)) {
	case extArchive:
		if d.archives.add(path) {
			d.logger.Debug("found archive", "path", path)
			d.scanArchive(path)
		}
	case extSource:
		if d.loose.add(path) {
			d.logger.Debug("found loose source", "path", path)
		}
	case extCompiled:
		d.logger.Debug("skipping loose compiled unit", "path", path)
	}
}

func (d *discovery) scanArchive(path string) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		d.logger.Warn("cannot scan archive", "path", path, "err", err)
		return
	}
	defer rc.Close()
	d.scanZip(path, &rc.Reader)
}

func (d *discovery) scanZip(prefix string, r *zip.Reader) {
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := prefix + memberSep + f.Name
		switch strings.ToLower(filepath.Ext(f.Name)) {
		case extSource, extCompiled:
			d.packaged.add(name)
		case extArchive:
			nested, err := openNested(f)
			if err != nil {
				d.logger.Warn("cannot scan nested archive", "path", name, "err", err)
				continue
			}
			d.logger.Debug("scanning nested archive", "path", name)
			d.scanZip(name, nested)
		}
	}
}

// orderedSet keeps first-seen order and drops duplicates.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) bool {
	if s.seen[v] {
		return false
	}
	s.seen[v] = true
	s.items = append(s.items, v)
	return true
}
