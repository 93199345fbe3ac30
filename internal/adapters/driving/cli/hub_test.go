package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
)

// mockHubSynchroniser implements driving.HubSynchroniser for testing.
type mockHubSynchroniser struct {
	syncRes    *driving.HubSyncResult
	harvestRes *driving.HarvestResult
	err        error
}

func (m *mockHubSynchroniser) SyncNotion(_ context.Context) (*driving.HubSyncResult, error) {
	return m.syncRes, m.err
}

func (m *mockHubSynchroniser) HarvestYouTube(_ context.Context) (*driving.HarvestResult, error) {
	return m.harvestRes, m.err
}

func setupHubTest(mock *mockHubSynchroniser) func() {
	old := hubSynchroniser
	hubSynchroniser = mock
	return func() {
		hubSynchroniser = old
	}
}

func TestHubSyncCmd(t *testing.T) {
	cleanup := setupHubTest(&mockHubSynchroniser{syncRes: &driving.HubSyncResult{
		Synced:  []string{"/vault/05_knowledge-hub/Go Generics.md"},
		Skipped: []string{"Existing Note"},
	}})
	defer cleanup()

	out, err := executeCommand("hub", "sync")

	assert.NoError(t, err)
	assert.Contains(t, out, "synced")
	assert.Contains(t, out, "Go Generics.md")
	assert.Contains(t, out, "Existing Note")
}

func TestHubSyncCmd_NothingNew(t *testing.T) {
	cleanup := setupHubTest(&mockHubSynchroniser{syncRes: &driving.HubSyncResult{}})
	defer cleanup()

	out, err := executeCommand("hub", "sync")

	assert.NoError(t, err)
	assert.Contains(t, out, "No new pages.")
}

func TestHubYouTubeCmd(t *testing.T) {
	cleanup := setupHubTest(&mockHubSynchroniser{harvestRes: &driving.HarvestResult{
		Added:   []string{"Concurrency Patterns"},
		Skipped: []string{"Already Saved"},
	}})
	defer cleanup()

	out, err := executeCommand("hub", "youtube")

	assert.NoError(t, err)
	assert.Contains(t, out, "bookmarked")
	assert.Contains(t, out, "Concurrency Patterns")
	assert.Contains(t, out, "Already Saved")
}
