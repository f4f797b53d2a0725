// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"

	"gorm.io/gorm"

	authModel "laporbug_backend/internals/features/users/auth/model"
)

/* ====================== USER ====================== */

func FindUserByUsername(ctx context.Context, db *gorm.DB, username string) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uint) (*authModel.UserModel, error) {
	var user authModel.UserModel
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func IsUserActive(ctx context.Context, db *gorm.DB, userID uint) (bool, error) {
	var user struct {
		IsActive bool
	}
	if err := db.WithContext(ctx).Table("users").Select("is_active").Where("id = ?", userID).Take(&user).Error; err != nil {
		return false, err
	}
	return user.IsActive, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, user *authModel.UserModel) error {
	return db.WithContext(ctx).Create(user).Error
}
