// Package dropbox implements the vault store on the Dropbox API.
package dropbox

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"
	"golang.org/x/time/rate"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Conservative defaults, well under Dropbox's per-user limits. Every cron
// run is short-lived so a small burst is enough.
const (
	requestsPerSecond = 4.0
	burstSize         = 8
)

// Store implements driven.VaultStore on the Dropbox files and sharing
// namespaces.
type Store struct {
	files   files.Client
	sharing sharing.Client
	limiter *rate.Limiter
}

// New creates a Store using a short-lived access token, normally the one
// the token refresher keeps in Redis.
func New(accessToken string) *Store {
	cfg := dropbox.Config{Token: accessToken, LogLevel: dropbox.LogOff}
	return &Store{
		files:   files.New(cfg),
		sharing: sharing.New(cfg),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// ListFolder returns every entry directly under path, draining pagination.
func (s *Store) ListFolder(ctx context.Context, path string) ([]driven.Entry, error) {
	return s.list(ctx, path, false)
}

// ListFolderRecursive returns every entry under path and its subfolders.
func (s *Store) ListFolderRecursive(ctx context.Context, path string) ([]driven.Entry, error) {
	return s.list(ctx, path, true)
}

func (s *Store) list(ctx context.Context, path string, recursive bool) ([]driven.Entry, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	arg := files.NewListFolderArg(path)
	arg.Recursive = recursive
	res, err := s.files.ListFolder(arg)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, mapListError(err))
	}

	entries := collectEntries(nil, res.Entries)
	for res.HasMore {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		res, err = s.files.ListFolderContinue(files.NewListFolderContinueArg(res.Cursor))
		if err != nil {
			return nil, fmt.Errorf("continuing listing of %s: %w", path, err)
		}
		entries = collectEntries(entries, res.Entries)
	}

	logger.Debug("listed %d entries under %s", len(entries), path)
	return entries, nil
}

func collectEntries(entries []driven.Entry, metadata []files.IsMetadata) []driven.Entry {
	for _, md := range metadata {
		switch m := md.(type) {
		case *files.FileMetadata:
			entries = append(entries, driven.Entry{
				Name:        m.Name,
				Path:        m.PathLower,
				PathDisplay: m.PathDisplay,
				Modified:    m.ServerModified,
			})
		case *files.FolderMetadata:
			entries = append(entries, driven.Entry{
				Name:        m.Name,
				Path:        m.PathLower,
				PathDisplay: m.PathDisplay,
				IsFolder:    true,
			})
		}
	}
	return entries
}

// Exists reports whether a file or folder exists at path.
func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return false, err
	}

	_, err := s.files.GetMetadata(files.NewGetMetadataArg(path))
	if err != nil {
		if isMetadataNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("probing %s: %w", path, err)
	}
	return true, nil
}

// Download returns the contents of the file at path.
func (s *Store) Download(ctx context.Context, path string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	_, content, err := s.files.Download(files.NewDownloadArg(path))
	if err != nil {
		if isDownloadNotFound(err) {
			return nil, fmt.Errorf("downloading %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("downloading %s: %w", path, err)
	}
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logger.Debug("downloaded %s (%d bytes)", path, len(data))
	return data, nil
}

// Upload writes content to path. With overwrite false an existing file
// surfaces as domain.ErrAlreadyExists.
func (s *Store) Upload(ctx context.Context, path string, content []byte, overwrite bool) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	arg := files.NewUploadArg(path)
	if overwrite {
		arg.Mode = &files.WriteMode{Tagged: dropbox.Tagged{Tag: files.WriteModeOverwrite}}
	}

	if _, err := s.files.Upload(arg, bytes.NewReader(content)); err != nil {
		if isUploadConflict(err) {
			return fmt.Errorf("uploading %s: %w", path, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	logger.Debug("uploaded %s (%d bytes, overwrite=%t)", path, len(content), overwrite)
	return nil
}

// CreateFolder creates a folder at path. An existing folder is a no-op.
func (s *Store) CreateFolder(ctx context.Context, path string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if _, err := s.files.CreateFolderV2(files.NewCreateFolderArg(path)); err != nil {
		if isCreateFolderConflict(err) {
			logger.Debug("folder %s already exists", path)
			return nil
		}
		return fmt.Errorf("creating folder %s: %w", path, err)
	}
	logger.Info("created folder %s", path)
	return nil
}

// Move relocates a file from one path to another.
func (s *Store) Move(ctx context.Context, fromPath, toPath string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	if _, err := s.files.MoveV2(files.NewRelocationArg(fromPath, toPath)); err != nil {
		return fmt.Errorf("moving %s to %s: %w", fromPath, toPath, err)
	}
	logger.Info("moved %s to %s", fromPath, toPath)
	return nil
}

// SharedLink returns a shared link for path, creating one when none exists.
func (s *Store) SharedLink(ctx context.Context, path string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	res, err := s.sharing.CreateSharedLinkWithSettings(
		sharing.NewCreateSharedLinkWithSettingsArg(path))
	if err == nil {
		if url := sharedLinkURL(res); url != "" {
			return url, nil
		}
		return "", fmt.Errorf("sharing %s: unexpected link metadata", path)
	}
	if !isSharedLinkExists(err) {
		return "", fmt.Errorf("sharing %s: %w", path, err)
	}

	// The link exists already; fetch it instead.
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	listArg := sharing.NewListSharedLinksArg()
	listArg.Path = path
	listArg.DirectOnly = true
	links, err := s.sharing.ListSharedLinks(listArg)
	if err != nil {
		return "", fmt.Errorf("listing shared links for %s: %w", path, err)
	}
	for _, link := range links.Links {
		if url := sharedLinkURL(link); url != "" {
			return url, nil
		}
	}
	return "", fmt.Errorf("listing shared links for %s: %w", path, domain.ErrNotFound)
}

func sharedLinkURL(md sharing.IsSharedLinkMetadata) string {
	switch m := md.(type) {
	case *sharing.FileLinkMetadata:
		return m.Url
	case *sharing.FolderLinkMetadata:
		return m.Url
	case *sharing.SharedLinkMetadata:
		return m.Url
	default:
		return ""
	}
}
