package mysql

import (
	"context"
	"database/sql"
)

// KV implements the key-value backend over a single MySQL table, for
// deployments that already run MySQL and do not want a Redis instance
// just for the directory data.
type KV struct{ db *sql.DB }

func New(db *sql.DB) *KV { return &KV{db: db} }

// EnsureSchema creates the kv table if it does not exist.
func (r *KV) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createTableSQL)
	return err
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, getSQL, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *KV) Set(ctx context.Context, key string, val []byte) error {
	_, err := r.db.ExecContext(ctx, upsertSQL, key, val)
	return err
}
