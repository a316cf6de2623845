package database

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names for the platform's document collections
const (
	CollectionBusCompanies  = "busCompanies"
	CollectionBusRoutes     = "busRoutes"
	CollectionBuses         = "buses"
	CollectionSeatLayouts   = "seatLayouts"
	CollectionBusSchedules  = "busSchedules"
	CollectionBookings      = "bookings"
	CollectionUserProfiles  = "userProfiles"
	CollectionPaymentAudits = "paymentAudits"
)

var (
	// ErrDocumentNotFound is returned when no document exists for the id
	ErrDocumentNotFound = errors.New("document not found")

	// ErrVersionConflict is returned by PutVersioned when the stored
	// version no longer matches the expected one
	ErrVersionConflict = errors.New("document version conflict")
)

// DocumentStore is the persistence boundary for all collections. Every
// document carries a monotonically increasing version used for optimistic
// concurrency control on hot documents (schedule seat maps).
type DocumentStore interface {
	// GetByID loads the document into dest and returns its current version
	GetByID(collection, id string, dest interface{}) (int64, error)

	// List loads every document in the collection into dest (a pointer to
	// a slice), ordered by id
	List(collection string, dest interface{}) error

	// QueryByField loads all documents whose top-level field equals value
	QueryByField(collection, field string, value interface{}, dest interface{}) error

	// Put upserts the document unconditionally and returns the new version
	Put(collection, id string, doc interface{}) (int64, error)

	// PutVersioned writes the document only if the stored version still
	// equals expectedVersion, returning the new version. A stale expected
	// version yields ErrVersionConflict. expectedVersion 0 means the
	// document must not exist yet.
	PutVersioned(collection, id string, doc interface{}, expectedVersion int64) (int64, error)

	// DeleteByID removes the document, ErrDocumentNotFound if absent
	DeleteByID(collection, id string) error
}

// SQLDocumentStore implements DocumentStore on a single Postgres table
// with a JSONB data column
type SQLDocumentStore struct {
	db DB
}

// NewSQLDocumentStore creates a document store backed by Postgres
func NewSQLDocumentStore(db DB) *SQLDocumentStore {
	return &SQLDocumentStore{db: db}
}

// EnsureSchema creates the documents table if it does not exist
func (s *SQLDocumentStore) EnsureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			collection  TEXT        NOT NULL,
			id          TEXT        NOT NULL,
			version     BIGINT      NOT NULL DEFAULT 1,
			data        JSONB       NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}
	return nil
}

type documentRow struct {
	Version int64  `db:"version"`
	Data    []byte `db:"data"`
}

// GetByID loads one document and reports its version
func (s *SQLDocumentStore) GetByID(collection, id string, dest interface{}) (int64, error) {
	var row documentRow
	err := s.db.Get(&row,
		`SELECT version, data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrDocumentNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	if err := json.Unmarshal(row.Data, dest); err != nil {
		return 0, fmt.Errorf("failed to decode document %s/%s: %w", collection, id, err)
	}
	return row.Version, nil
}

// List loads a whole collection ordered by id
func (s *SQLDocumentStore) List(collection string, dest interface{}) error {
	var rows [][]byte
	err := s.db.Select(&rows,
		`SELECT data FROM documents WHERE collection = $1 ORDER BY id`,
		collection)
	if err != nil {
		return fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	return decodeRows(rows, dest)
}

// QueryByField matches documents on text equality of a top-level JSON field
func (s *SQLDocumentStore) QueryByField(collection, field string, value interface{}, dest interface{}) error {
	var rows [][]byte
	err := s.db.Select(&rows,
		`SELECT data FROM documents WHERE collection = $1 AND data ->> $2 = $3 ORDER BY id`,
		collection, field, fmt.Sprint(value))
	if err != nil {
		return fmt.Errorf("failed to query collection %s by %s: %w", collection, field, err)
	}
	return decodeRows(rows, dest)
}

// Put upserts a document, bumping its version
func (s *SQLDocumentStore) Put(collection, id string, doc interface{}) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	var version int64
	err = s.db.QueryRow(`
		INSERT INTO documents (collection, id, version, data, updated_at)
		VALUES ($1, $2, 1, $3, NOW())
		ON CONFLICT (collection, id)
		DO UPDATE SET version = documents.version + 1, data = EXCLUDED.data, updated_at = NOW()
		RETURNING version`,
		collection, id, data).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to put document %s/%s: %w", collection, id, err)
	}
	return version, nil
}

// PutVersioned writes only when the stored version matches expectedVersion.
// The version predicate in the WHERE clause is what makes concurrent seat
// updates safe: two writers racing on the same schedule cannot both win.
func (s *SQLDocumentStore) PutVersioned(collection, id string, doc interface{}, expectedVersion int64) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	if expectedVersion == 0 {
		result, err := s.db.Exec(`
			INSERT INTO documents (collection, id, version, data, updated_at)
			VALUES ($1, $2, 1, $3, NOW())
			ON CONFLICT (collection, id) DO NOTHING`,
			collection, id, data)
		if err != nil {
			return 0, fmt.Errorf("failed to insert document %s/%s: %w", collection, id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check insert result for %s/%s: %w", collection, id, err)
		}
		if affected == 0 {
			return 0, ErrVersionConflict
		}
		return 1, nil
	}

	result, err := s.db.Exec(`
		UPDATE documents
		SET version = version + 1, data = $3, updated_at = NOW()
		WHERE collection = $1 AND id = $2 AND version = $4`,
		collection, id, data, expectedVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check update result for %s/%s: %w", collection, id, err)
	}
	if affected == 0 {
		// Distinguish a stale version from a missing document
		var exists int
		err := s.db.Get(&exists,
			`SELECT 1 FROM documents WHERE collection = $1 AND id = $2`,
			collection, id)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrDocumentNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("failed to check document %s/%s: %w", collection, id, err)
		}
		return 0, ErrVersionConflict
	}
	return expectedVersion + 1, nil
}

// DeleteByID removes a document
func (s *SQLDocumentStore) DeleteByID(collection, id string) error {
	result, err := s.db.Exec(
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result for %s/%s: %w", collection, id, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// decodeRows assembles raw JSONB rows into one array and decodes it into
// dest so callers keep working with their typed slices
func decodeRows(rows [][]byte, dest interface{}) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(row)
	}
	buf.WriteByte(']')
	if err := json.Unmarshal(buf.Bytes(), dest); err != nil {
		return fmt.Errorf("failed to decode documents: %w", err)
	}
	return nil
}
