package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsearch/pkg/models"
)

func TestAccumulatorPreservesArrivalOrder(t *testing.T) {
	acc := NewAccumulator()

	acc.Append([]models.TweetRecord{{ID: "1"}, {ID: "2"}})
	acc.Append([]models.TweetRecord{{ID: "3"}})
	acc.Append(nil)
	acc.Append([]models.TweetRecord{{ID: "2"}}) // duplicates are kept

	assert.Equal(t, 4, acc.Count())

	snap := acc.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, "1", snap[0].ID)
	assert.Equal(t, "2", snap[1].ID)
	assert.Equal(t, "3", snap[2].ID)
	assert.Equal(t, "2", snap[3].ID)
}

func TestAccumulatorSnapshotIsACopy(t *testing.T) {
	acc := NewAccumulator()
	acc.Append([]models.TweetRecord{{ID: "1"}})

	snap := acc.Snapshot()
	snap[0].ID = "mutated"

	assert.Equal(t, "1", acc.Snapshot()[0].ID)
}

func TestAccumulatorEmptySnapshot(t *testing.T) {
	acc := NewAccumulator()
	assert.Equal(t, 0, acc.Count())
	assert.Empty(t, acc.Snapshot())
}
