package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ota-report-backend/internal/model"
)

// ErrNotFound is returned when a username does not exist.
var ErrNotFound = errors.New("user not found")

// UserStore defines the operator account operations.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed user store.
func NewGormStore(db *gorm.DB) UserStore {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return nil
}

func (s *gormStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &u, nil
}

func (s *gormStore) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *gormStore) Delete(ctx context.Context, username string) error {
	res := s.db.WithContext(ctx).Where("username = ?", username).Delete(&model.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user %q: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("update password for %q: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
