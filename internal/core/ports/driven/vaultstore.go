package driven

import (
	"context"
	"time"
)

// Entry is a single file or folder inside the vault.
type Entry struct {
	// Name is the entry's display name including any extension.
	Name string

	// Path is the lowercase Dropbox path used for subsequent calls.
	Path string

	// PathDisplay is the cased path for presentation.
	PathDisplay string

	// IsFolder distinguishes folders from files.
	IsFolder bool

	// Modified is the server modification time. Zero for folders.
	Modified time.Time
}

// VaultStore provides access to the Obsidian vault hosted on Dropbox.
// All listings are fully drained: implementations follow pagination
// cursors so callers always see the complete folder.
type VaultStore interface {
	// ListFolder returns every entry directly under path.
	ListFolder(ctx context.Context, path string) ([]Entry, error)

	// ListFolderRecursive returns every entry under path and its subfolders.
	ListFolderRecursive(ctx context.Context, path string) ([]Entry, error)

	// Exists reports whether a file or folder exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Download returns the contents of the file at path.
	// Returns domain.ErrNotFound if the file does not exist.
	Download(ctx context.Context, path string) ([]byte, error)

	// Upload writes content to path. When overwrite is false and the file
	// already exists the upload fails.
	Upload(ctx context.Context, path string, content []byte, overwrite bool) error

	// CreateFolder creates a folder at path. Creating an existing folder
	// is not an error.
	CreateFolder(ctx context.Context, path string) error

	// Move relocates a file from one path to another.
	Move(ctx context.Context, fromPath, toPath string) error

	// SharedLink returns a shared link for path, creating one if none
	// exists yet.
	SharedLink(ctx context.Context, path string) (string, error)
}
