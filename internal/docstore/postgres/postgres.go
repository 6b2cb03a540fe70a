// Package postgres implements docstore.Store on a single PostgreSQL table,
// keeping each document as a JSONB object keyed by (collection path, id).
package postgres

import (
	"context"
	"database/sql"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"fitmap/internal/docstore"
)

// Store uses database/sql with parameterized queries only; the schema is
// created by internal/database/migration.
type Store struct {
	db *sql.DB
}

// New creates a Postgres document store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ docstore.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, ref docstore.DocRef) (docstore.Snapshot, error) {
	const q = `
		SELECT id, data
		FROM documents
		WHERE collection = $1 AND id = $2
	`
	var snap docstore.JSONSnapshot
	err := s.db.QueryRowContext(ctx, q, ref.Coll.Path(), ref.ID).Scan(&snap.DocID, &snap.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, pkgerrors.Wrapf(err, "get %s", ref.Path())
	}
	return snap, nil
}

// GetAll looks documents up one after another, skipping missing ones.
func (s *Store) GetAll(ctx context.Context, refs []docstore.DocRef) ([]docstore.Snapshot, error) {
	out := make([]docstore.Snapshot, 0, len(refs))
	for _, ref := range refs {
		snap, err := s.Get(ctx, ref)
		if errors.Is(err, docstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, nil
}

func (s *Store) List(ctx context.Context, coll docstore.CollectionRef) ([]docstore.Snapshot, error) {
	const q = `
		SELECT id, data
		FROM documents
		WHERE collection = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, q, coll.Path())
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list %s", coll.Path())
	}
	defer rows.Close()

	out := make([]docstore.Snapshot, 0)
	for rows.Next() {
		var snap docstore.JSONSnapshot
		if err := rows.Scan(&snap.DocID, &snap.Data); err != nil {
			return nil, pkgerrors.Wrapf(err, "scan %s", coll.Path())
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrapf(err, "list %s", coll.Path())
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, ref docstore.DocRef, data any) error {
	const q = `
		INSERT INTO documents (collection, id, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (collection, id) DO NOTHING
	`
	b, err := docstore.EncodeJSON(data)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, q, ref.Coll.Path(), ref.ID, string(b))
	if err != nil {
		return pkgerrors.Wrapf(err, "create %s", ref.Path())
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrapf(err, "create %s", ref.Path())
	}
	if n == 0 {
		return docstore.ErrAlreadyExists
	}
	return nil
}

// Update merges fields into the stored object with the jsonb || operator.
func (s *Store) Update(ctx context.Context, ref docstore.DocRef, fields map[string]any) error {
	const q = `
		UPDATE documents
		SET data = data || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2
	`
	b, err := docstore.EncodeJSON(fields)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, q, ref.Coll.Path(), ref.ID, string(b))
	if err != nil {
		return pkgerrors.Wrapf(err, "update %s", ref.Path())
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrapf(err, "update %s", ref.Path())
	}
	if n == 0 {
		return docstore.ErrNotFound
	}
	return nil
}

// Delete removes a document; a missing row is not an error.
func (s *Store) Delete(ctx context.Context, ref docstore.DocRef) error {
	const q = `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := s.db.ExecContext(ctx, q, ref.Coll.Path(), ref.ID); err != nil {
		return pkgerrors.Wrapf(err, "delete %s", ref.Path())
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
