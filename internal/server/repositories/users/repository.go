package users

import (
	"context"

	"github.com/antonkvl/authgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, email string, passwordHash string) error
	SetActive(ctx context.Context, email string, active bool) error
	List(ctx context.Context) ([]*models.User, error)
}
