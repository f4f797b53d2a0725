package repository

import (
	"context"

	"gorm.io/gorm"

	database "laporbug_backend/internals/databases"
	photoModel "laporbug_backend/internals/features/bugs/bug_photos/model"
)

type PhotoRepository struct {
	DB *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{DB: db}
}

func (r *PhotoRepository) ListByReport(ctx context.Context, reportID uint) ([]photoModel.BugPhotoModel, error) {
	var rows []photoModel.BugPhotoModel
	err := database.Conn(ctx, r.DB).
		Where("id_bug_report = ?", reportID).
		Order("posisi ASC, created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *PhotoRepository) CountByReport(ctx context.Context, reportID uint) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.DB).Model(&photoModel.BugPhotoModel{}).
		Where("id_bug_report = ?", reportID).
		Count(&n).Error
	return n, err
}

// MaxPosition: posisi terbesar yang masih hidup (0 kalau belum ada foto).
func (r *PhotoRepository) MaxPosition(ctx context.Context, reportID uint) (int, error) {
	var maxPos int
	err := database.Conn(ctx, r.DB).Model(&photoModel.BugPhotoModel{}).
		Select("COALESCE(MAX(posisi), 0)").
		Where("id_bug_report = ?", reportID).
		Row().Scan(&maxPos)
	return maxPos, err
}

func (r *PhotoRepository) FindByID(ctx context.Context, id uint) (*photoModel.BugPhotoModel, error) {
	var m photoModel.BugPhotoModel
	if err := database.Conn(ctx, r.DB).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PhotoRepository) Create(ctx context.Context, m *photoModel.BugPhotoModel) error {
	return database.Conn(ctx, r.DB).Create(m).Error
}

func (r *PhotoRepository) Delete(ctx context.Context, id uint) error {
	return database.Conn(ctx, r.DB).Delete(&photoModel.BugPhotoModel{}, id).Error
}

func (r *PhotoRepository) DeleteByReport(ctx context.Context, reportID uint) error {
	return database.Conn(ctx, r.DB).
		Where("id_bug_report = ?", reportID).
		Delete(&photoModel.BugPhotoModel{}).Error
}
