package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore writes artifacts under a root directory as <root>/<namespace>/<path>.
type FileStore struct {
	root string
}

// DefaultDir is the file store root when none is configured.
const DefaultDir = "figma_components"

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}
	return &FileStore{root: dir}, nil
}

// Root returns the root directory.
func (s *FileStore) Root() string {
	return s.root
}

// Put writes content atomically: it is written to a temporary file in the
// target directory and renamed over the destination.
func (s *FileStore) Put(ctx context.Context, namespace, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dest, err := s.filename(namespace, path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dest)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create file in %q: %w", dir, err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file %q: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file %q: %w", dest, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", dest, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to write file %q: %w", dest, err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, namespace, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.filename(namespace, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *FileStore) List(ctx context.Context, namespace string) ([]string, error) {
	ns, err := cleanNamespace(namespace)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(s.root, ns)

	var out []string
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == base {
				return fs.SkipAll
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		rel, err := filepath.Rel(base, p)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (s *FileStore) filename(namespace, path string) (string, error) {
	ns, p, err := cleanAddress(namespace, path)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, ns, filepath.FromSlash(p)), nil
}
