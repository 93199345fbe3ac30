package driving

import "context"

// HubSyncResult reports a Notion-to-vault synchronisation.
type HubSyncResult struct {
	// Synced lists the vault paths of notes written this run.
	Synced []string

	// Skipped lists the page titles whose notes already existed.
	Skipped []string
}

// HarvestResult reports a YouTube-email harvest.
type HarvestResult struct {
	// Added lists the video titles bookmarked this run.
	Added []string

	// Skipped lists the titles whose URLs were already in the database.
	Skipped []string
}

// HubSynchroniser drives the Knowledge Hub automations.
type HubSynchroniser interface {
	// SyncNotion copies newly created Knowledge Hub pages into the vault.
	SyncNotion(ctx context.Context) (*HubSyncResult, error)

	// HarvestYouTube turns YouTube-share emails into Knowledge Hub
	// bookmarks.
	HarvestYouTube(ctx context.Context) (*HarvestResult, error)
}
