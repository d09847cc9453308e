package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-users/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

var userColumns = []string{
	"id", "firstname", "lastname", "username", "email", "password",
	"role_id", "deleted", "created_at", "updated_at",
}

func TestGormUserStore_GetByID_Found(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "Ada", "Lovelace", "ada", "ada@x.com", "hash", "r-1", false, now, now))

	u, err := store.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "r-1", u.RoleID)
	assert.False(t, u.Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUserStore_FindByEmail_PreloadsRole(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "Ada", "Lovelace", "ada", "ada@x.com", "hash", "r-1", false, now, now))
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE "roles"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at", "updated_at"}).
			AddRow("r-1", "admin", now, now))

	u, err := store.FindByEmail(context.Background(), "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.RoleTitle())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_List_SortedByFirstName(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY firstname asc`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "Ada", "L", "ada", "ada@x.com", "h", "r-1", false, now, now).
			AddRow("u-2", "Bob", "M", "bob", "bob@x.com", "h", "r-1", true, now, now))

	users, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[1].Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_CreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u := &models.User{FirstName: "Ada", Email: "ada@x.com", Password: "h", RoleID: "r-1"}
	require.NoError(t, store.CreateUser(context.Background(), u))
	assert.NotEmpty(t, u.ID, "id is assigned before insert")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})

	err := store.CreateUser(context.Background(), &models.User{Email: "ada@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGormUserStore_CreateUser_OtherError(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnError(errors.New("db down"))

	err := store.CreateUser(context.Background(), &models.User{Email: "ada@x.com"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestGormUserStore_UpdateUser(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	now := time.Now()
	mock.ExpectExec(`UPDATE "users" SET .* WHERE id = \$\d+ AND deleted = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "Grace", "Hopper", "ada", "ada@x.com", "h2", "r-1", false, now, now))

	u, err := store.UpdateUser(context.Background(), "u-1", UserUpdate{FirstName: "Grace", LastName: "Hopper", Password: "h2"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", u.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_UpdateUser_InactiveIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateUser(context.Background(), "u-1", UserUpdate{FirstName: "Grace"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStore_SoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	store := &GormUserStore{DB: db}

	now := time.Now()
	mock.ExpectExec(`UPDATE "users" SET .*"deleted"=\$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "Ada", "L", "ada", "ada@x.com", "h", "r-1", true, now, now))

	u, err := store.SoftDelete(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, u.Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
