package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

// UserRepository is bound to the user database only.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

// SetResetToken writes only the reset_token column, leaving the password as
// whatever a concurrent reset last committed. It reports whether the user exists.
func (r *UserRepository) SetResetToken(ctx context.Context, id uint, token string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("reset_token", token)
	if result.Error != nil {
		return false, fmt.Errorf("set reset token failed: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// ConsumeResetToken swaps in passwordHash and clears the pending reset token in
// one statement, only if token is still the stored one. It reports whether a
// row was changed, so a token can be redeemed at most once.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, id uint, token, passwordHash string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND reset_token = ?", id, token).
		Updates(map[string]interface{}{
			"password":    passwordHash,
			"reset_token": nil,
		})
	if result.Error != nil {
		return false, fmt.Errorf("consume reset token failed: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
