package archive

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Dir implements Store on top of a local filesystem directory.
// All names are resolved relative to the configured root.
type Dir struct {
	root string
}

// NewDir creates a Dir archive rooted at dir.
// The directory is created (with parents) if it does not already exist.
func NewDir(dir string) (*Dir, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: abs}, nil
}

// resolve turns an archive name into an absolute filesystem path.
func (d *Dir) resolve(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}

// Put opens the named file for writing, creating parent directories as
// needed. An existing file is truncated.
func (d *Dir) Put(_ context.Context, name string) (io.WriteCloser, error) {
	full := d.resolve(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	return os.Create(full)
}

// Get opens the named file for reading.
func (d *Dir) Get(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(d.resolve(name))
}

// Remove deletes the named file. Removing an absent file returns nil.
func (d *Dir) Remove(_ context.Context, name string) error {
	err := os.Remove(d.resolve(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List walks the archive directory and returns every file, sorted by
// name. Subdirectories contribute their files under slash-joined names.
func (d *Dir) List(_ context.Context) ([]Info, error) {
	var infos []Info
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		fi, err := entry.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		infos = append(infos, Info{
			Name:    filepath.ToSlash(rel),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos, nil
}

// Ensure Dir implements Store at compile time.
var _ Store = (*Dir)(nil)
