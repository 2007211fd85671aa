package groups

import (
	"context"

	"github.com/antonkvl/authgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, name string) (*models.Group, error)
	GetByName(ctx context.Context, name string) (*models.Group, error)
	// GetUserGroupIDs returns the IDs of the groups the user belongs to.
	// The result is an unordered set and may be empty.
	GetUserGroupIDs(ctx context.Context, userID int64) ([]int64, error)
	AddMember(ctx context.Context, userID, groupID int64) error
	RemoveMember(ctx context.Context, userID, groupID int64) error
}
