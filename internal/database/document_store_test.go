package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newMockStore(t *testing.T) (*SQLDocumentStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mockDB := &mockDatabase{db: sqlx.NewDb(db, "sqlmock")}
	return NewSQLDocumentStore(mockDB), mock, func() { db.Close() }
}

func TestDocumentStoreGetByID(t *testing.T) {
	store, mock, closeDB := newMockStore(t)
	defer closeDB()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT version, data FROM documents`).
			WithArgs(CollectionBuses, "bus1").
			WillReturnRows(sqlmock.NewRows([]string{"version", "data"}).
				AddRow(int64(3), []byte(`{"id":"bus1","name":"Express"}`)))

		var doc storeDoc
		version, err := store.GetByID(CollectionBuses, "bus1", &doc)
		require.NoError(t, err)
		assert.Equal(t, int64(3), version)
		assert.Equal(t, "Express", doc.Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT version, data FROM documents`).
			WithArgs(CollectionBuses, "missing").
			WillReturnError(sql.ErrNoRows)

		var doc storeDoc
		_, err := store.GetByID(CollectionBuses, "missing", &doc)
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT version, data FROM documents`).
			WithArgs(CollectionBuses, "bus1").
			WillReturnError(fmt.Errorf("database error"))

		var doc storeDoc
		_, err := store.GetByID(CollectionBuses, "bus1", &doc)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get document")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentStorePut(t *testing.T) {
	store, mock, closeDB := newMockStore(t)
	defer closeDB()

	t.Run("Upsert Returns Version", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO documents`).
			WithArgs(CollectionBuses, "bus1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(2)))

		version, err := store.Put(CollectionBuses, "bus1", storeDoc{ID: "bus1", Name: "Express"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), version)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentStorePutVersioned(t *testing.T) {
	store, mock, closeDB := newMockStore(t)
	defer closeDB()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents`).
			WithArgs(CollectionBusSchedules, "sched1", sqlmock.AnyArg(), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		version, err := store.PutVersioned(CollectionBusSchedules, "sched1", storeDoc{ID: "sched1"}, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(6), version)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Stale Version", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents`).
			WithArgs(CollectionBusSchedules, "sched1", sqlmock.AnyArg(), int64(4)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT 1 FROM documents`).
			WithArgs(CollectionBusSchedules, "sched1").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		_, err := store.PutVersioned(CollectionBusSchedules, "sched1", storeDoc{ID: "sched1"}, 4)
		assert.ErrorIs(t, err, ErrVersionConflict)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Document Missing", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents`).
			WithArgs(CollectionBusSchedules, "gone", sqlmock.AnyArg(), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT 1 FROM documents`).
			WithArgs(CollectionBusSchedules, "gone").
			WillReturnError(sql.ErrNoRows)

		_, err := store.PutVersioned(CollectionBusSchedules, "gone", storeDoc{ID: "gone"}, 2)
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create New Document", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO documents`).
			WithArgs(CollectionBusSchedules, "sched2", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		version, err := store.PutVersioned(CollectionBusSchedules, "sched2", storeDoc{ID: "sched2"}, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create Conflicts With Existing", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO documents`).
			WithArgs(CollectionBusSchedules, "sched1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := store.PutVersioned(CollectionBusSchedules, "sched1", storeDoc{ID: "sched1"}, 0)
		assert.ErrorIs(t, err, ErrVersionConflict)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentStoreList(t *testing.T) {
	store, mock, closeDB := newMockStore(t)
	defer closeDB()

	t.Run("Decodes Rows In Order", func(t *testing.T) {
		mock.ExpectQuery(`SELECT data FROM documents`).
			WithArgs(CollectionBusRoutes).
			WillReturnRows(sqlmock.NewRows([]string{"data"}).
				AddRow([]byte(`{"id":"r1","name":"Lahore"}`)).
				AddRow([]byte(`{"id":"r2","name":"Karachi"}`)))

		var docs []storeDoc
		err := store.List(CollectionBusRoutes, &docs)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "r1", docs[0].ID)
		assert.Equal(t, "r2", docs[1].ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Collection", func(t *testing.T) {
		mock.ExpectQuery(`SELECT data FROM documents`).
			WithArgs(CollectionBusRoutes).
			WillReturnRows(sqlmock.NewRows([]string{"data"}))

		var docs []storeDoc
		err := store.List(CollectionBusRoutes, &docs)
		require.NoError(t, err)
		assert.Empty(t, docs)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentStoreQueryByField(t *testing.T) {
	store, mock, closeDB := newMockStore(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT data FROM documents`).
		WithArgs(CollectionBookings, "scheduleId", "sched1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"b1"}`)))

	var docs []storeDoc
	err := store.QueryByField(CollectionBookings, "scheduleId", "sched1", &docs)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b1", docs[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStoreDeleteByID(t *testing.T) {
	store, mock, closeDB := newMockStore(t)
	defer closeDB()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents`).
			WithArgs(CollectionBuses, "bus1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.DeleteByID(CollectionBuses, "bus1")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM documents`).
			WithArgs(CollectionBuses, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.DeleteByID(CollectionBuses, "missing")
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Mock database implementation for testing
type mockDatabase struct {
	db *sqlx.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
