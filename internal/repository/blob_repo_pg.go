package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/frontdesk/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BlobRepository stores collection documents in a single Postgres table.
type BlobRepository struct {
	db DB
}

func NewBlobRepository(db DB) *BlobRepository {
	return &BlobRepository{db: db}
}

const createBlobTable = `CREATE TABLE IF NOT EXISTS kv_blobs (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (r *BlobRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createBlobTable)
	return err
}

func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := r.db.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key=$1`, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *BlobRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx, `INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	return err
}

var _ storage.KV = (*BlobRepository)(nil)
