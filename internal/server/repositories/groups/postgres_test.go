package groups

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/antonkvl/authgate/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+groups\s*\(name\)\s*VALUES\s*\(\$1\)\s*RETURNING\s+id\s*$`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(7))
	mock.ExpectQuery(q).WithArgs("admins").WillReturnRows(rows)

	got, err := repo.Create(context.Background(), "admins")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || got.Name != "admins" {
		t.Fatalf("unexpected group: %+v", got)
	}
}

func TestGetByName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name\s+FROM\s+groups\s+WHERE\s+name\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ghosts").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), "ghosts")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
}

func TestGetUserGroupIDs_ReturnsIDs(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+group_id\s+FROM\s+user_groups\s+WHERE\s+user_id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"group_id"}).AddRow(int64(2)).AddRow(int64(3))
	mock.ExpectQuery(q).WithArgs(int64(1)).WillReturnRows(rows)

	got, err := repo.GetUserGroupIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetUserGroupIDs error: %v", err)
	}
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("unexpected ids: %v", got)
	}
}

func TestGetUserGroupIDs_EmptySet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+group_id\s+FROM\s+user_groups`

	mock.ExpectQuery(q).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows([]string{"group_id"}))

	got, err := repo.GetUserGroupIDs(context.Background(), 9)
	if err != nil {
		t.Fatalf("GetUserGroupIDs error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAddMember_Idempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+user_groups\s*\(user_id,\s*group_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(user_id,\s*group_id\)\s*DO\s+NOTHING\s*$`

	mock.ExpectExec(q).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.AddMember(context.Background(), 1, 2); err != nil {
		t.Fatalf("AddMember error: %v", err)
	}
	if err := repo.AddMember(context.Background(), 1, 2); err != nil {
		t.Fatalf("repeated AddMember error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRemoveMember(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+user_groups\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+group_id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs(int64(1), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RemoveMember(context.Background(), 1, 2); err != nil {
		t.Fatalf("RemoveMember error: %v", err)
	}
}
