package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
	session_id TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      JSONB       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (session_id, key)
)`

const upsert = `
INSERT INTO local_storage(session_id, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (session_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

type PostgresStore struct{ DB *pgxpool.Pool }

func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.DB.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create local_storage: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, session, key string) ([]byte, error) {
	var v []byte
	err := p.DB.QueryRow(ctx, `SELECT value FROM local_storage WHERE session_id=$1 AND key=$2`, session, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *PostgresStore) Set(ctx context.Context, session, key string, value []byte) error {
	_, err := p.DB.Exec(ctx, upsert, session, key, value)
	return err
}

func (p *PostgresStore) Delete(ctx context.Context, session, key string) error {
	_, err := p.DB.Exec(ctx, `DELETE FROM local_storage WHERE session_id=$1 AND key=$2`, session, key)
	return err
}

func (p *PostgresStore) SetMany(ctx context.Context, session string, values map[string][]byte) error {
	tx, err := p.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for k, v := range values {
		if _, err := tx.Exec(ctx, upsert, session, k, v); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	return tx.Commit(ctx)
}
