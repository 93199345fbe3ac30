package dropbox

import (
	"errors"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/sharing"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
)

// The SDK surfaces endpoint failures as per-endpoint API error structs.
// These helpers decode the handful of cases the services branch on.

func lookupNotFound(l *files.LookupError) bool {
	return l != nil && l.Tag == files.LookupErrorNotFound
}

func isMetadataNotFound(err error) bool {
	var apiErr files.GetMetadataAPIError
	if !errors.As(err, &apiErr) || apiErr.EndpointError == nil {
		return false
	}
	return lookupNotFound(apiErr.EndpointError.Path)
}

func isDownloadNotFound(err error) bool {
	var apiErr files.DownloadAPIError
	if !errors.As(err, &apiErr) || apiErr.EndpointError == nil {
		return false
	}
	return lookupNotFound(apiErr.EndpointError.Path)
}

func isUploadConflict(err error) bool {
	var apiErr files.UploadAPIError
	if !errors.As(err, &apiErr) || apiErr.EndpointError == nil {
		return false
	}
	failed := apiErr.EndpointError.Path
	return failed != nil && failed.Reason != nil &&
		failed.Reason.Tag == files.WriteErrorConflict
}

func isCreateFolderConflict(err error) bool {
	var apiErr files.CreateFolderV2APIError
	if !errors.As(err, &apiErr) || apiErr.EndpointError == nil {
		return false
	}
	path := apiErr.EndpointError.Path
	return path != nil && path.Tag == files.WriteErrorConflict
}

func isSharedLinkExists(err error) bool {
	var apiErr sharing.CreateSharedLinkWithSettingsAPIError
	if !errors.As(err, &apiErr) || apiErr.EndpointError == nil {
		return false
	}
	return apiErr.EndpointError.Tag == sharing.CreateSharedLinkWithSettingsErrorSharedLinkAlreadyExists
}

func mapListError(err error) error {
	var apiErr files.ListFolderAPIError
	if errors.As(err, &apiErr) && apiErr.EndpointError != nil &&
		lookupNotFound(apiErr.EndpointError.Path) {
		return domain.ErrNotFound
	}
	return err
}
