package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/antonkvl/authgate/internal/common"
	"github.com/antonkvl/authgate/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, name string) ([]byte, error) {
	query :=
		`SELECT value FROM settings
		 WHERE name = $1
		 `

	var value []byte
	err := r.db.QueryRowContext(ctx, query, name).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return value, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, name string, value []byte) error {
	query :=
		`INSERT INTO settings (name, value)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
