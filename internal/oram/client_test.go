package oram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRetrieveDeleteRoundTrip(t *testing.T) {
	server, err := NewServer(15)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	require.NoError(t, client.Store(server, 1, "aaaa"))
	require.NoError(t, client.Store(server, 2, "bbbb"))

	data, err := client.Retrieve(server, 1)
	require.NoError(t, err)
	assert.Equal(t, "aaaa", data)

	data, err = client.Retrieve(server, 2)
	require.NoError(t, err)
	assert.Equal(t, "bbbb", data)

	removed, found, err := client.Delete(server, 1)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "aaaa", removed)

	data, err = client.Retrieve(server, 1)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestStoreDuplicateIDRejected(t *testing.T) {
	server, err := NewServer(7)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	require.NoError(t, client.Store(server, 1, "aaaa"))
	err = client.Store(server, 1, "bbbb")
	assert.ErrorIs(t, err, ErrIDExists)
}

func TestRetrieveUnknownIDReturnsEmpty(t *testing.T) {
	server, err := NewServer(7)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	data, err := client.Retrieve(server, 42)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDeleteUnknownIDNotFound(t *testing.T) {
	server, err := NewServer(7)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	data, found, err := client.Delete(server, 42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, data)
}

func TestRetrieveReassignsFreshLeaf(t *testing.T) {
	server, err := NewServer(15)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	require.NoError(t, client.Store(server, 1, "aaaa"))
	before := client.position[1].leafBits

	_, err = client.Retrieve(server, 1)
	require.NoError(t, err)

	after, ok := client.position[1]
	require.True(t, ok)
	// Not asserting before != after.leafBits directly: a fresh random leaf
	// can coincidentally repeat. Assert instead that a position entry still
	// exists and carries a recomputed tag consistent with the data.
	assert.NotEmpty(t, after.leafBits)
	assert.Equal(t, computeTag(client.macKey, 1, "aaaa"), after.tag)
	_ = before
}

func TestBucketOccupancyInvariant(t *testing.T) {
	server, err := NewServer(15)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	require.NoError(t, client.Store(server, 1, "aaaa"))
	require.NoError(t, client.Store(server, 2, "bbbb"))
	require.NoError(t, client.Store(server, 3, "cccc"))

	for level := 0; level <= server.Height(); level++ {
		for j := 0; j < server.NumNodesInLevel(level); j++ {
			node := server.NodeAt(level, j)
			assert.Len(t, node.bucket, BucketSize)
		}
	}
}

func TestManyStoresAndRetrievesStayConsistent(t *testing.T) {
	server, err := NewServer(63)
	require.NoError(t, err)
	client, err := NewClient()
	require.NoError(t, err)

	want := map[int64]string{
		10: "wwww",
		20: "xxxx",
		30: "yyyy",
		40: "zzzz",
	}
	for id, data := range want {
		require.NoError(t, client.Store(server, id, data))
	}
	for id, data := range want {
		got, err := client.Retrieve(server, id)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}
