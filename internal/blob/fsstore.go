package blob

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// FSStore is a filesystem-backed Store. Path keys are resolved relative to a
// root directory; nested keys become nested directories.
//
// Concurrent writers to distinct keys are safe (each key is its own file).
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed and returns a store over it.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &FSStore{root: root}, nil
}

// DownloadText reads the object at key. A missing file maps to ErrNotFound.
func (s *FSStore) DownloadText(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(s.resolve(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), nil
}

// UploadText writes content at key, creating parent directories and
// overwriting any previous object. contentType is ignored.
func (s *FSStore) UploadText(ctx context.Context, key, content, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := s.resolve(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", key, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// ListPaths walks the store and returns keys matching opts.Prefix, sorted
// lexically and capped at opts.MaxResults when positive.
//
// The walk starts at the deepest directory implied by the prefix so listing a
// date-scoped prefix does not scan the whole root.
func (s *FSStore) ListPaths(ctx context.Context, opts ListOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.root
	if dir := path.Dir(opts.Prefix); dir != "." && dir != "/" {
		start = filepath.Join(s.root, filepath.FromSlash(dir))
	}
	if _, err := os.Stat(start); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", start, err)
	}

	var keys []string
	err := filepath.WalkDir(start, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, opts.Prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", opts.Prefix, err)
	}

	sort.Strings(keys)
	if opts.MaxResults > 0 && len(keys) > opts.MaxResults {
		keys = keys[:opts.MaxResults]
	}
	return keys, nil
}

func (s *FSStore) resolve(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}
