package blob

import (
	"context"
	"errors"
	"io/fs"
)

// ErrNotFound is returned by DownloadText when no object exists at the given
// path. Callers treat absence as the normal "not yet produced" signal, so it
// must be distinguishable from I/O failures.
var ErrNotFound = errors.New("blob: object not found")

// ListOptions narrows a ListPaths call.
//
// Fields:
//   - Prefix: only paths starting with this string are returned. May end
//     mid-segment (e.g. "bid_ask/bid_ask_2024").
//   - MaxResults: cap on returned paths; 0 means unlimited.
type ListOptions struct {
	Prefix     string
	MaxResults int
}

// Store is the narrow contract the pipeline holds against the object store.
// Production runs point it at a remote blob service; local runs and tests use
// the filesystem implementation in this package.
//
// Path keys use forward slashes regardless of platform.
type Store interface {
	// DownloadText fetches the object at path. Returns ErrNotFound (possibly
	// wrapped) when the object is absent.
	DownloadText(ctx context.Context, path string) (string, error)

	// UploadText stores content at path with overwrite semantics. contentType
	// is advisory; filesystem-backed stores ignore it.
	UploadText(ctx context.Context, path, content, contentType string) error

	// ListPaths returns object paths matching opts.Prefix in lexical order.
	ListPaths(ctx context.Context, opts ListOptions) ([]string, error)
}

// IsNotFound reports whether err means the requested object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}
