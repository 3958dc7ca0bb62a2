package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mergeRow struct {
	Key    string
	Price  int
	Active bool
	Origin string
}

func rowKey(r mergeRow) string { return r.Key }

func rowOverlay(existing, incoming mergeRow) mergeRow {
	// Submitted values win; the persisted origin tag stands in for row
	// identity carried across the replace.
	incoming.Origin = existing.Origin
	return incoming
}

func TestMergeSubmittedWinsOverPersisted(t *testing.T) {
	persisted := []mergeRow{{Key: "a", Price: 10, Active: true, Origin: "row-1"}}
	submitted := []mergeRow{{Key: "a", Price: 25, Active: false}}

	out := mergeForReplace(persisted, submitted, nil, rowKey, rowOverlay)

	require.Len(t, out, 1)
	assert.Equal(t, 25, out[0].Price)
	assert.False(t, out[0].Active)
	assert.Equal(t, "row-1", out[0].Origin, "persisted identity must survive the overlay")
}

func TestMergeDefaultsAreAdditiveOnly(t *testing.T) {
	persisted := []mergeRow{{Key: "a", Price: 10, Active: false, Origin: "row-1"}}
	submitted := []mergeRow{{Key: "b", Price: 5, Active: true}}
	defaults := []mergeRow{
		{Key: "a", Price: 99, Active: true, Origin: "default"},
		{Key: "c", Price: 7, Active: true, Origin: "default"},
	}

	out := mergeForReplace(persisted, submitted, defaults, rowKey, rowOverlay)

	require.Len(t, out, 3)
	byKey := map[string]mergeRow{}
	for _, r := range out {
		byKey[r.Key] = r
	}

	// The explicitly deactivated row is not resurrected by its default.
	assert.False(t, byKey["a"].Active)
	assert.Equal(t, 10, byKey["a"].Price)
	// The absent default is filled in.
	assert.Equal(t, "default", byKey["c"].Origin)
}

func TestMergeIsIdempotent(t *testing.T) {
	submitted := []mergeRow{
		{Key: "b", Price: 5, Active: true},
		{Key: "a", Price: 25, Active: true},
	}
	defaults := []mergeRow{{Key: "c", Price: 7, Active: true, Origin: "default"}}

	first := mergeForReplace(nil, submitted, defaults, rowKey, rowOverlay)
	// Second write: previous result is now the persisted state and the UI
	// resubmits the same payload.
	second := mergeForReplace(first, submitted, defaults, rowKey, rowOverlay)

	assert.Equal(t, first, second)
}

func TestMergeDeduplicatesWithinInputs(t *testing.T) {
	submitted := []mergeRow{
		{Key: "a", Price: 1, Active: true},
		{Key: "a", Price: 2, Active: true},
	}

	out := mergeForReplace(nil, submitted, nil, rowKey, rowOverlay)

	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Price, "later duplicate wins via overlay")
}
