package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCensus(t *testing.T) {
	nodes, err := FromLocations(sampleLocations())
	require.NoError(t, err)
	want := CensusOf(nodes)
	assert.Equal(t, 5, want.Len())

	t.Run("split across collections", func(t *testing.T) {
		avail := NewCollection(Available, nodes[:2])
		active := NewCollection(Active, nodes[2:])
		require.NoError(t, TakeCensus(avail, active).Verify(want))
	})

	t.Run("lost node", func(t *testing.T) {
		avail := NewCollection(Available, nodes[:2])
		err := TakeCensus(avail).Verify(want)
		require.ErrorIs(t, err, ErrInvalidTree)
		assert.Contains(t, err.Error(), "lost [3]")
	})

	t.Run("duplicated node", func(t *testing.T) {
		avail := NewCollection(Available, nodes)
		active := NewCollection(Active, []*Node{nodes[2]})
		c := TakeCensus(avail, active)
		assert.Equal(t, []NodeID{3}, c.Duplicates)
		assert.Equal(t, 6, c.Visited)
		require.ErrorIs(t, c.Verify(want), ErrInvalidTree)
	})
}
