package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreVersioning(t *testing.T) {
	store := NewMemoryDocumentStore()

	t.Run("Put Bumps Version", func(t *testing.T) {
		v1, err := store.Put(CollectionBuses, "bus1", storeDoc{ID: "bus1", Name: "first"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), v1)

		v2, err := store.Put(CollectionBuses, "bus1", storeDoc{ID: "bus1", Name: "second"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), v2)

		var doc storeDoc
		version, err := store.GetByID(CollectionBuses, "bus1", &doc)
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)
		assert.Equal(t, "second", doc.Name)
	})

	t.Run("Get Missing Document", func(t *testing.T) {
		var doc storeDoc
		_, err := store.GetByID(CollectionBuses, "missing", &doc)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("PutVersioned Matching Version", func(t *testing.T) {
		version, err := store.PutVersioned(CollectionBuses, "bus1", storeDoc{ID: "bus1", Name: "third"}, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), version)
	})

	t.Run("PutVersioned Stale Version", func(t *testing.T) {
		_, err := store.PutVersioned(CollectionBuses, "bus1", storeDoc{ID: "bus1"}, 2)
		assert.ErrorIs(t, err, ErrVersionConflict)
	})

	t.Run("PutVersioned Missing Document", func(t *testing.T) {
		_, err := store.PutVersioned(CollectionBuses, "gone", storeDoc{ID: "gone"}, 1)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("PutVersioned Create New", func(t *testing.T) {
		version, err := store.PutVersioned(CollectionBuses, "bus2", storeDoc{ID: "bus2"}, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)

		_, err = store.PutVersioned(CollectionBuses, "bus2", storeDoc{ID: "bus2"}, 0)
		assert.ErrorIs(t, err, ErrVersionConflict)
	})
}

func TestMemoryStoreQueries(t *testing.T) {
	store := NewMemoryDocumentStore()

	docs := []storeDoc{
		{ID: "b3", Name: "late"},
		{ID: "b1", Name: "early"},
		{ID: "b2", Name: "early"},
	}
	for _, d := range docs {
		_, err := store.Put(CollectionBookings, d.ID, d)
		require.NoError(t, err)
	}

	t.Run("List Ordered By ID", func(t *testing.T) {
		var got []storeDoc
		require.NoError(t, store.List(CollectionBookings, &got))
		require.Len(t, got, 3)
		assert.Equal(t, "b1", got[0].ID)
		assert.Equal(t, "b2", got[1].ID)
		assert.Equal(t, "b3", got[2].ID)
	})

	t.Run("QueryByField", func(t *testing.T) {
		var got []storeDoc
		require.NoError(t, store.QueryByField(CollectionBookings, "name", "early", &got))
		require.Len(t, got, 2)
		assert.Equal(t, "b1", got[0].ID)
		assert.Equal(t, "b2", got[1].ID)
	})

	t.Run("QueryByField No Match", func(t *testing.T) {
		var got []storeDoc
		require.NoError(t, store.QueryByField(CollectionBookings, "name", "nothing", &got))
		assert.Empty(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.DeleteByID(CollectionBookings, "b3"))
		assert.ErrorIs(t, store.DeleteByID(CollectionBookings, "b3"), ErrDocumentNotFound)
	})
}
