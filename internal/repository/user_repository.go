package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"accounthub/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Tokens").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Tokens").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Save(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("save user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(user *model.User) error {
	if err := r.db.Select("Tokens").Delete(user).Error; err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) AddToken(userID uint, token string) error {
	record := model.SessionToken{UserID: userID, Token: token}
	if err := r.db.Create(&record).Error; err != nil {
		return fmt.Errorf("add session token failed: %w", err)
	}
	return nil
}

// RemoveToken deletes the matching token row if present. Removing a
// token that is already gone is not an error.
func (r *UserRepository) RemoveToken(userID uint, token string) error {
	if err := r.db.Where("user_id = ? AND token = ?", userID, token).Delete(&model.SessionToken{}).Error; err != nil {
		return fmt.Errorf("remove session token failed: %w", err)
	}
	return nil
}

func (r *UserRepository) RemoveAllTokens(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.SessionToken{}).Error; err != nil {
		return fmt.Errorf("remove session tokens failed: %w", err)
	}
	return nil
}
