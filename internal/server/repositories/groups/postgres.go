package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/antonkvl/authgate/internal/common"
	"github.com/antonkvl/authgate/internal/dbx"
	"github.com/antonkvl/authgate/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Group, error) {

	query :=
		`INSERT INTO groups (name)
         VALUES ($1)
		 RETURNING id
		 `

	group := &models.Group{Name: name}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&group.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	query :=
		`SELECT id, name FROM groups
		 WHERE name = $1
		 `

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&group.ID, &group.Name)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return group, nil
}

func (r *PostgresRepository) GetUserGroupIDs(ctx context.Context, userID int64) ([]int64, error) {
	query :=
		`SELECT group_id FROM user_groups
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}

func (r *PostgresRepository) AddMember(ctx context.Context, userID, groupID int64) error {
	query :=
		`INSERT INTO user_groups (user_id, group_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, group_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, groupID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, userID, groupID int64) error {
	query :=
		`DELETE FROM user_groups
		 WHERE user_id = $1 AND group_id = $2
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, groupID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
