package repomanager

import (
	"context"
	"database/sql"

	"github.com/antonkvl/authgate/internal/dbx"
	"github.com/antonkvl/authgate/internal/server/repositories/groups"
	"github.com/antonkvl/authgate/internal/server/repositories/settings"
	"github.com/antonkvl/authgate/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Groups(db dbx.DBTX) groups.Repository
	Settings(db dbx.DBTX) settings.Repository
}
