package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
)

func newPlannerFixture() *fakeVault {
	v := newFakeVault(testVaultRoot)
	v.addFolder("/vault/09_weekly")
	v.addFolder("/vault/09_weekly/_weeks")
	v.addFolder("/vault/09_weekly/_newsletters")
	v.addFolder("/vault/09_weekly/_weekly-maps")
	v.addFolder("/vault/09_weekly/_weekly-health-review")
	return v
}

func TestCreateWeek(t *testing.T) {
	v := newPlannerFixture()
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	// Monday 4 March -> week ending Sunday 10 March.
	res, err := svc.CreateWeek(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "/vault/09_weekly/_weeks/Week-Ending-2024-03-10.md", res.Path)

	res, err = svc.CreateWeek(context.Background(), testToday)
	require.NoError(t, err)
	assert.False(t, res.Created)
}

func TestCreateWeek_MissingWeeksFolder(t *testing.T) {
	v := newFakeVault(testVaultRoot)
	v.addFolder("/vault/09_weekly")
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	_, err := svc.CreateWeek(context.Background(), testToday)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateNewsletter(t *testing.T) {
	v := newPlannerFixture()
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	// Sunday after next: 17 March.
	res, err := svc.CreateNewsletter(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "/vault/09_weekly/_newsletters/Weekly Newsletter Mar. 17, 2024.md", res.Path)
}

func TestCreateWeeklyMap(t *testing.T) {
	v := newPlannerFixture()
	v.addFolder("/vault/99_templates")
	v.addFile("/vault/99_templates/weekly-templates/weekly_map_template_w_placeholder.md",
		"# Weekly Map\n\n{{placeholder}}\n", testToday)
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	res, err := svc.CreateWeeklyMap(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "/vault/09_weekly/_weekly-maps/Weekly Map 2024-03-17.md", res.Path)
	assert.Equal(t, "# Weekly Map\n\n{{placeholder}}\n", v.content(res.Path))

	res, err = svc.CreateWeeklyMap(context.Background(), testToday)
	require.NoError(t, err)
	assert.False(t, res.Created)
}

func TestCreateWeeklyMap_MissingTemplate(t *testing.T) {
	v := newPlannerFixture()
	v.addFolder("/vault/99_templates")
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	_, err := svc.CreateWeeklyMap(context.Background(), testToday)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateHealthReview(t *testing.T) {
	v := newPlannerFixture()
	v.addFile("/vault/09_weekly/_weekly-health-review/Weekly Health Review 7 (Feb. 21 - Feb. 27, 2024).md",
		"Start Date: 2024-02-21\nEnd Date: 2024-02-27\n", testToday)
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	// Monday 4 March -> next Wednesday 6 March through Tuesday 12 March.
	res, err := svc.CreateHealthReview(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t,
		"/vault/09_weekly/_weekly-health-review/Weekly Health Review 8 (Mar. 06 - Mar. 12, 2024).md",
		res.Path)
	assert.Equal(t, "Start Date: 2024-03-06\nEnd Date: 2024-03-12\n", v.content(res.Path))

	// A review covering the same window already exists now.
	res, err = svc.CreateHealthReview(context.Background(), testToday)
	require.NoError(t, err)
	assert.False(t, res.Created)
}

func TestCreateHealthReview_FirstReview(t *testing.T) {
	v := newPlannerFixture()
	svc := NewPlannerService(v, testVaultRoot, time.UTC)

	res, err := svc.CreateHealthReview(context.Background(), testToday)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Contains(t, res.Path, "Weekly Health Review 1 ")
}
