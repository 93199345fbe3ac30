package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
)

const journalNote = `---
Date: 2024-03-04
Tags:
  - journal
Mood: good
_Experiences / Events / Meetings / Sessions:
---

## Morning

Woke up early.
`

func TestParse_SplitsFrontMatterAndBody(t *testing.T) {
	doc, err := Parse(journalNote)
	require.NoError(t, err)

	assert.True(t, doc.HasFrontMatter())
	assert.Contains(t, doc.Body(), "## Morning")

	date, ok := doc.Get("Date")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-04", date)
}

func TestParse_NoFrontMatter(t *testing.T) {
	doc, err := Parse("Just a plain note.\n")
	require.NoError(t, err)

	assert.False(t, doc.HasFrontMatter())
	assert.Equal(t, "Just a plain note.\n", doc.Body())

	_, ok := doc.Get("Date")
	assert.False(t, ok)
}

func TestSet_PreservesKeyOrder(t *testing.T) {
	doc, err := Parse(journalNote)
	require.NoError(t, err)

	doc.Set("Date", "2024-03-05")
	doc.Set("Day of Week", "Tuesday")

	out, err := doc.Render()
	require.NoError(t, err)

	// Existing keys keep their positions; the new key lands at the end.
	dateIdx := indexOf(t, out, "Date: 2024-03-05")
	tagsIdx := indexOf(t, out, "Tags:")
	moodIdx := indexOf(t, out, "Mood: good")
	dowIdx := indexOf(t, out, "Day of Week: Tuesday")
	assert.Less(t, dateIdx, tagsIdx)
	assert.Less(t, tagsIdx, moodIdx)
	assert.Less(t, moodIdx, dowIdx)

	assert.Contains(t, out, "## Morning")
}

func TestSet_CreatesFrontMatterWhenAbsent(t *testing.T) {
	doc, err := Parse("Body only.\n")
	require.NoError(t, err)

	doc.Set("Date", "2024-03-04")

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "---\nDate: 2024-03-04\n---\nBody only.\n")
}

func TestSet_DateScalarStaysPlain(t *testing.T) {
	doc, err := Parse("Body only.\n")
	require.NoError(t, err)

	doc.Set("Date", "2024-03-05")
	doc.Set("Day of Week", "Tuesday")

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "Date: 2024-03-05\n")
	assert.NotContains(t, out, `"2024-03-05"`)
	assert.Contains(t, out, "Day of Week: Tuesday\n")
}

func TestAppendToList(t *testing.T) {
	doc, err := Parse(journalNote)
	require.NoError(t, err)

	added := doc.AppendToList("_Experiences / Events / Meetings / Sessions", "[[Coffee with Sam]]")
	assert.True(t, added)

	// Duplicate appends are rejected.
	added = doc.AppendToList("_Experiences / Events / Meetings / Sessions", "[[Coffee with Sam]]")
	assert.False(t, added)

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Contains(t, out, `- "[[Coffee with Sam]]"`)

	items := doc.List("_Experiences / Events / Meetings / Sessions")
	assert.Equal(t, []string{"[[Coffee with Sam]]"}, items)
}

func TestAppendToList_ExistingItems(t *testing.T) {
	note := "---\nLinks:\n  - \"[[One]]\"\n---\nbody\n"
	doc, err := Parse(note)
	require.NoError(t, err)

	assert.False(t, doc.AppendToList("Links", "[[One]]"))
	assert.True(t, doc.AppendToList("Links", "[[Two]]"))
	assert.Equal(t, []string{"[[One]]", "[[Two]]"}, doc.List("Links"))
}

func TestAppendToList_PromotesScalarValue(t *testing.T) {
	note := "---\nLinks: \"[[One]]\"\n---\nbody\n"
	doc, err := Parse(note)
	require.NoError(t, err)

	// The existing scalar becomes the first sequence element, so the
	// duplicate check still sees it.
	assert.False(t, doc.AppendToList("Links", "[[One]]"))
	assert.True(t, doc.AppendToList("Links", "[[Two]]"))
	assert.Equal(t, []string{"[[One]]", "[[Two]]"}, doc.List("Links"))

	out, err := doc.Render()
	require.NoError(t, err)
	assert.Contains(t, out, `- "[[One]]"`)
	assert.Contains(t, out, `- "[[Two]]"`)
}

func TestRequireKey(t *testing.T) {
	doc, err := Parse(journalNote)
	require.NoError(t, err)

	date, err := doc.RequireKey("Date")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", date)

	_, err = doc.RequireKey("Nope")
	assert.ErrorIs(t, err, domain.ErrPropertyMissing)

	bare, err := Parse("no front matter\n")
	require.NoError(t, err)
	_, err = bare.RequireKey("Date")
	assert.ErrorIs(t, err, domain.ErrNoFrontMatter)
}

func TestRender_RoundTripUnchangedKeys(t *testing.T) {
	doc, err := Parse(journalNote)
	require.NoError(t, err)

	out, err := doc.Render()
	require.NoError(t, err)

	assert.Contains(t, out, "Date: 2024-03-04")
	assert.Contains(t, out, "- journal")
	assert.Contains(t, out, "Mood: good")
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	i := strings.Index(haystack, needle)
	assert.GreaterOrEqual(t, i, 0, "expected to find %q", needle)
	return i
}
