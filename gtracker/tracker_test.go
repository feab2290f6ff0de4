package gtracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/vtext/gpool"
)

func TestAddIsIdempotentOnPoolRefcount(t *testing.T) {
	pool := gpool.New()
	id, err := pool.Alloc([]byte("x"))
	require.NoError(t, err)

	tr := New(pool)
	require.NoError(t, tr.Add(id))
	require.NoError(t, tr.Add(id))
	require.NoError(t, tr.Add(id))

	rc, err := pool.Refcount(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rc) // 1 from Alloc + 1 from the tracker's single incref
	assert.Equal(t, uint32(3), tr.Count(id))
}

func TestRemoveOnlyDecrefsOnceCountReachesZero(t *testing.T) {
	pool := gpool.New()
	id, err := pool.Alloc([]byte("x"))
	require.NoError(t, err)

	tr := New(pool)
	require.NoError(t, tr.Add(id))
	require.NoError(t, tr.Add(id))

	require.NoError(t, tr.Remove(id))
	assert.True(t, tr.HasAny(id))
	rc, err := pool.Refcount(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), rc)

	require.NoError(t, tr.Remove(id))
	assert.False(t, tr.HasAny(id))
	rc, err = pool.Refcount(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), rc)
}

func TestRemoveOnUntrackedIDIsNoop(t *testing.T) {
	pool := gpool.New()
	id, err := pool.Alloc([]byte("x"))
	require.NoError(t, err)

	tr := New(pool)
	require.NoError(t, tr.Remove(id))

	rc, err := pool.Refcount(id)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), rc)
}

func TestClearReleasesEveryDistinctID(t *testing.T) {
	pool := gpool.New()
	id1, err := pool.Alloc([]byte("x"))
	require.NoError(t, err)
	id2, err := pool.Alloc([]byte("y"))
	require.NoError(t, err)

	tr := New(pool)
	require.NoError(t, tr.Add(id1))
	require.NoError(t, tr.Add(id1))
	require.NoError(t, tr.Add(id2))

	// Hand Alloc's own references over to the tracker, so the tracker's
	// references are the only ones left.
	require.NoError(t, pool.Decref(id1))
	require.NoError(t, pool.Decref(id2))

	require.NoError(t, tr.Clear())

	_, err = pool.Get(id1)
	require.Error(t, err)
	_, err = pool.Get(id2)
	require.Error(t, err)
	assert.Equal(t, uint64(0), tr.TotalRefs())
}
