package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/testdb"
)

func strPtr(s string) *string { return &s }

func TestUserRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testdb.Open(t, &model.User{}))

	user := &model.User{Name: "bob", Email: "bob@gmail.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "bob@gmail.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Nil(t, byEmail.ResetToken)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "bob", byID.Name)
}

func TestUserRepository_NotFoundIsNil(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testdb.Open(t, &model.User{}))

	user, err := repo.GetByEmail(ctx, "ghost@gmail.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_SetResetTokenLeavesPasswordAlone(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testdb.Open(t, &model.User{}))

	user := &model.User{Name: "ann", Email: "ann@gmail.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	// A stale copy of the row must not matter: only the token column is written.
	stale := *user
	stale.Password = "stale"

	ok, err := repo.SetResetToken(ctx, stale.ID, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ResetToken)
	assert.Equal(t, "tok", *got.ResetToken)
	assert.Equal(t, "hash", got.Password)
	assert.Equal(t, "ann", got.Name)

	ok, err = repo.SetResetToken(ctx, 99, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_ConsumeResetToken(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testdb.Open(t, &model.User{}))

	user := &model.User{Name: "ann", Email: "ann@gmail.com", Password: "old", ResetToken: strPtr("tok")}
	require.NoError(t, repo.Create(ctx, user))

	ok, err := repo.ConsumeResetToken(ctx, user.ID, "other", "new")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ConsumeResetToken(ctx, user.ID, "tok", "new")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)
	assert.Nil(t, got.ResetToken)

	ok, err = repo.ConsumeResetToken(ctx, user.ID, "tok", "newer")
	require.NoError(t, err)
	assert.False(t, ok, "a redeemed token must not match again")
}

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return NewUserRepository(db), mock
}

func TestUserRepository_GetByEmailWrapsDBError(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnError(assert.AnError)

	user, err := repo.GetByEmail(context.Background(), "bob@gmail.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "query user by email failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetResetTokenUpdatesOneColumn(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `reset_token`=? WHERE id = ?")).
		WithArgs("tok", 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.SetResetToken(context.Background(), 7, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ConsumeResetTokenUsesConditionalUpdate(t *testing.T) {
	repo, mock := newMockUserRepo(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET `password`=?,`reset_token`=? WHERE id = ? AND reset_token = ?")).
		WithArgs("hash", nil, 7, "tok").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.ConsumeResetToken(context.Background(), 7, "tok", "hash")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
