package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ota-report-backend/internal/model"
)

func newTestStore(t *testing.T) UserStore {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return NewGormStore(db)
}

func TestUserStoreCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &model.User{
		Username:   "alice",
		Password:   "hash",
		Name:       "Alice",
		Role:       "admin",
		Facilities: []string{"sg1", "dn1"},
	}
	require.NoError(t, s.Create(ctx, u))

	got, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "admin", got.Role)
	assert.Equal(t, []string{"sg1", "dn1"}, got.Facilities)
	assert.True(t, got.IsAdmin())
}

func TestUserStoreGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &model.User{Username: "bob", Password: "h"}))
	assert.Error(t, s.Create(ctx, &model.User{Username: "bob", Password: "h2"}))
}

func TestUserStoreList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &model.User{Username: "carol", Password: "h"}))
	require.NoError(t, s.Create(ctx, &model.User{Username: "bob", Password: "h"}))

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

func TestUserStoreDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &model.User{Username: "dave", Password: "h"}))
	require.NoError(t, s.Delete(ctx, "dave"))

	_, err := s.GetByUsername(ctx, "dave")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "dave"), ErrNotFound)
}

func TestUserStoreUpdatePassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, &model.User{Username: "erin", Password: "old"}))
	require.NoError(t, s.UpdatePassword(ctx, "erin", "new"))

	got, err := s.GetByUsername(ctx, "erin")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)

	assert.ErrorIs(t, s.UpdatePassword(ctx, "ghost", "x"), ErrNotFound)
}
