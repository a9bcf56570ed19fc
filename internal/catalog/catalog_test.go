package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{MenuPractice, MenuOnCourse}, c.Modes.Values())
	assert.Equal(t, 10, c.Lies.Len())
	assert.Equal(t, 21, c.Clubs.Len())
	assert.Equal(t, 9, c.ShotTypes.Len())
	assert.Equal(t, 2, c.PuttDistances.Len())
	assert.Equal(t, 5, c.ResultsSwing.Len())
	assert.Equal(t, 5, c.ResultsPutt.Len())
	assert.Equal(t, 8, c.ContactsSwing.Len())
	assert.Equal(t, 3, c.ContactsPutt.Len())
	assert.Equal(t, 2, c.Plans.Len())
	assert.Equal(t, 2, c.Lags.Len())

	assert.Equal(t, 3, c.Lies.Columns())
	assert.Equal(t, 5, c.Clubs.Columns())
	assert.Equal(t, 3, c.ShotTypes.Columns())
	assert.Equal(t, 2, c.Plans.Columns())
}

func TestContainsIsLiteral(t *testing.T) {
	c := Default()

	assert.True(t, c.Lies.Contains("deep rough"))
	assert.False(t, c.Lies.Contains("Deep Rough"))
	assert.False(t, c.Lies.Contains("deep rough "))
	assert.True(t, c.Clubs.Contains("Dr"))
	assert.False(t, c.Clubs.Contains("dr"))
	assert.True(t, c.ShotTypes.Contains(TypePutt))
}

func TestValuesReturnsCopy(t *testing.T) {
	c := Default()

	vals := c.Lies.Values()
	vals[0] = "mud"
	assert.Equal(t, "tee", c.Lies.Values()[0])
}

func TestGlyphsFlowIntoLabels(t *testing.T) {
	g := Glyphs{Up: "u", Down: "d", Right: "r", Left: "l", Check: "OK", Cross: "NO"}
	c := New(g)

	assert.Equal(t, []string{"u", "d", "r", "l", "OK"}, c.ResultsSwing.Values())
	assert.True(t, c.ContactsSwing.Contains("good OK"))
	assert.True(t, c.ContactsPutt.Contains("good OK"))
	assert.Equal(t, []string{"shot as planned OK", "not as planned NO"}, c.Plans.Values())
}

func TestBranchSelectors(t *testing.T) {
	c := Default()

	assert.Equal(t, c.ResultsPutt.Name(), c.Results(true).Name())
	assert.Equal(t, c.ResultsSwing.Name(), c.Results(false).Name())
	assert.Equal(t, c.ContactsPutt.Name(), c.Contacts(true).Name())
	assert.Equal(t, c.ContactsSwing.Name(), c.Contacts(false).Name())
}

func TestMergedKeysDedupPreservesOrder(t *testing.T) {
	c := Default()
	g := c.Glyphs()

	// Swing and putt results are identical, so the merge collapses to one set.
	require.Equal(t, c.ResultsSwing.Values(), c.ResultKeys())

	// Putt contacts are a subset of swing contacts; merged order is the swing
	// order with nothing appended.
	contacts := c.ContactKeys()
	require.Equal(t, c.ContactsSwing.Len(), len(contacts))
	assert.Equal(t, "thin", contacts[0])
	assert.Equal(t, "good "+g.Check, contacts[len(contacts)-1])
}

func TestMergeKeysAppendsUnseen(t *testing.T) {
	got := mergeKeys([]string{"a", "b"}, []string{"b", "c"}, []string{"a", "d"})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}
