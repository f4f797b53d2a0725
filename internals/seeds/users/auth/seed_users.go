package user

import (
	"log"

	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	authHelper "laporbug_backend/internals/features/users/auth/helper"
	"laporbug_backend/internals/features/users/auth/model"
)

type UserSeed struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	NaturalKey  string `json:"natural_key"`
	DisplayName string `json:"display_name"`
}

// SeedUsers memasukkan akun yang belum ada (dicek dari username).
func SeedUsers(db *gorm.DB, inputs []UserSeed) {
	for _, data := range inputs {
		if !constants.IsKnownRole(data.Role) {
			log.Printf("❌ Role '%s' untuk '%s' tidak dikenal, dilewati.", data.Role, data.Username)
			continue
		}

		var existing model.UserModel
		if err := db.Where("username = ?", data.Username).First(&existing).Error; err == nil {
			log.Printf("ℹ️ User '%s' sudah ada, dilewati.", data.Username)
			continue
		}

		// 🔐 Hash password sebelum disimpan
		hashedPassword, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Username, err)
			continue
		}

		key := data.NaturalKey
		if key == "" {
			key = data.Username
		}
		newUser := model.UserModel{
			Username:    data.Username,
			Password:    hashedPassword,
			Role:        data.Role,
			NaturalKey:  key,
			DisplayName: data.DisplayName,
			IsActive:    true,
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", data.Username, err)
		} else {
			log.Printf("✅ Berhasil insert user '%s'", data.Username)
		}
	}
}
