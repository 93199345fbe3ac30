package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
)

func newOrganiserFixture() *fakeVault {
	v := newFakeVault(testVaultRoot)
	v.addFolder("/vault/06_notes+ideas")
	v.addFolder("/vault/07_experiences+events+meetings+sessions")
	v.addFile("/vault/Random Idea.md", "a thought? no, an idea", testToday)
	v.addFile("/vault/Team Meeting Notes.md", "agenda", testToday)
	return v
}

func newTestOrganiser(v *fakeVault) *OrganiserService {
	svc := NewOrganiserService(v, testVaultRoot)
	svc.now = func() time.Time { return testToday }
	return svc
}

func TestPlan(t *testing.T) {
	v := newOrganiserFixture()
	svc := newTestOrganiser(v)

	proposals, err := svc.Plan(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, proposals, 2)

	// Listings are sorted, so "Random Idea" comes first.
	assert.Equal(t, "note", proposals[0].Category)
	assert.Equal(t, "/vault/06_notes+ideas/Random Idea.md", proposals[0].ToPath)

	assert.Equal(t, "experience", proposals[1].Category)
	assert.Equal(t,
		"/vault/07_experiences+events+meetings+sessions/Team Meeting Notes.md",
		proposals[1].ToPath)
}

func TestPlan_PatternAndLimit(t *testing.T) {
	v := newOrganiserFixture()
	svc := newTestOrganiser(v)

	proposals, err := svc.Plan(context.Background(), 0, "*Meeting*")
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "Team Meeting Notes.md", proposals[0].Name)

	proposals, err = svc.Plan(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Len(t, proposals, 1)
}

func TestPlan_BadPattern(t *testing.T) {
	svc := newTestOrganiser(newOrganiserFixture())

	_, err := svc.Plan(context.Background(), 0, "[unclosed")
	assert.Error(t, err)
}

func TestPlan_FallsBackToUnprefixedFolder(t *testing.T) {
	v := newFakeVault(testVaultRoot)
	v.addFile("/vault/Essay Draft.md", "words", testToday)
	svc := newTestOrganiser(v)

	proposals, err := svc.Plan(context.Background(), 0, "")
	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "writing", proposals[0].Category)
	assert.Equal(t, "/vault/_Writing/Essay Draft.md", proposals[0].ToPath)
}

func TestApply(t *testing.T) {
	v := newOrganiserFixture()
	svc := newTestOrganiser(v)

	err := svc.Apply(context.Background(), driving.MoveProposal{
		Name:     "Team Meeting Notes.md",
		FromPath: "/vault/team meeting notes.md",
		ToPath:   "/vault/07_experiences+events+meetings+sessions/Team Meeting Notes.md",
	})
	require.NoError(t, err)

	assert.False(t, v.has("/vault/team meeting notes.md"))
	assert.True(t, v.has("/vault/07_experiences+events+meetings+sessions/team meeting notes.md"))
}

func TestApply_CollisionRenames(t *testing.T) {
	v := newOrganiserFixture()
	v.addFile("/vault/07_experiences+events+meetings+sessions/Team Meeting Notes.md",
		"earlier meeting", testToday)
	svc := newTestOrganiser(v)

	err := svc.Apply(context.Background(), driving.MoveProposal{
		Name:     "Team Meeting Notes.md",
		FromPath: "/vault/team meeting notes.md",
		ToPath:   "/vault/07_experiences+events+meetings+sessions/Team Meeting Notes.md",
	})
	require.NoError(t, err)

	// The original stays put; the incoming file carries a timestamp suffix.
	assert.Equal(t, "earlier meeting",
		v.content("/vault/07_experiences+events+meetings+sessions/Team Meeting Notes.md"))
	assert.True(t, v.has(
		"/vault/07_experiences+events+meetings+sessions/Team Meeting Notes_20240304_100000.md"))
}
