package reconcile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jarinstall/pkg/errors"
)

// DefaultStagingDir receives staged source trees.
const DefaultStagingDir = "external"

// Stager copies src trees into a staging directory, merging with whatever
// is already there.
type Stager struct {
	Dir    string
	Logger *log.Logger
}

// NewStager creates a stager. An empty dir means DefaultStagingDir.
func NewStager(dir string, logger *log.Logger) *Stager {
	if dir == "" {
		dir = DefaultStagingDir
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Stager{Dir: dir, Logger: logger}
}

// Outcome reports which unique files were staged.
type Outcome struct {
	Staged []string
	// Failed lists files whose group could not be copied.
	Failed []string
}

// Apply copies the contents of every group's directory into s.Dir. A failed
// group is logged and its files are reported in Failed; the other groups are
// still copied. Apply stops early only when ctx is canceled.
func (s *Stager) Apply(ctx context.Context, plan *Plan) (*Outcome, error) {
	out := &Outcome{}
	for _, g := range plan.Groups {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		s.Logger.Debug("staging sources", "from", g.Dir, "to", s.Dir)
		if err := CopyTree(g.Dir, s.Dir); err != nil {
			s.Logger.Warn("cannot stage sources", "dir", g.Dir, "err", err)
			out.Failed = append(out.Failed, g.Files...)
			continue
		}
		out.Staged = append(out.Staged, g.Files...)
	}
	return out, nil
}

// CopyTree copies the contents of src into dst, creating dst as needed and
// overwriting files that already exist there.
func CopyTree(src, dst string) error {
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStagingFailed, err, "copy %s to %s", src, dst)
	}
	return nil
}

func copyFile(srcPath, dstPath string, mode fs.FileMode) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source %q: %w", srcPath, err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("mkdir parent for %q: %w", dstPath, err)
	}

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode.Perm())
	if err != nil {
		return fmt.Errorf("open destination %q: %w", dstPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copy %q -> %q: %w", srcPath, dstPath, err)
	}
	return dst.Close()
}
