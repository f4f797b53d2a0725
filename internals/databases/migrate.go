package database

import (
	"log"

	"gorm.io/gorm"

	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
	historyModel "laporbug_backend/internals/features/bugs/bug_histories/model"
	photoModel "laporbug_backend/internals/features/bugs/bug_photos/model"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	refModel "laporbug_backend/internals/features/references/model"
	authModel "laporbug_backend/internals/features/users/auth/model"
)

// Migrate menyiapkan seluruh tabel. Dipakai saat boot (DB_AUTO_MIGRATE=true) dan di test.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&authModel.UserModel{},
		&authModel.TokenBlacklist{},
		&refModel.ValidatorModel{},
		&refModel.TeknisiModel{},
		&refModel.BugCategoryModel{},
		&reportModel.BugReportModel{},
		&assignModel.BugAssignModel{},
		&historyModel.BugHistoryModel{},
		&photoModel.BugPhotoModel{},
	)
	if err != nil {
		log.Printf("[ERROR] AutoMigrate: %v", err)
		return err
	}
	return nil
}
