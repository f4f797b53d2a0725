package repository

import (
	"context"

	"gorm.io/gorm"

	database "laporbug_backend/internals/databases"
	refModel "laporbug_backend/internals/features/references/model"
)

// ReferenceRepository: akses baca data referensi (kategori, validator, teknisi).
type ReferenceRepository struct {
	DB *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{DB: db}
}

func (r *ReferenceRepository) FindCategory(ctx context.Context, id uint) (*refModel.BugCategoryModel, error) {
	var cat refModel.BugCategoryModel
	if err := database.Conn(ctx, r.DB).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *ReferenceRepository) FindTeknisiByNIP(ctx context.Context, nip string) (*refModel.TeknisiModel, error) {
	var t refModel.TeknisiModel
	if err := database.Conn(ctx, r.DB).Where("nip = ?", nip).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ReferenceRepository) FindValidatorByNIP(ctx context.Context, nip string) (*refModel.ValidatorModel, error) {
	var v refModel.ValidatorModel
	if err := database.Conn(ctx, r.DB).Where("nip = ?", nip).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CategoryIDsByValidator: kategori yang dipegang validator tertentu.
func (r *ReferenceRepository) CategoryIDsByValidator(ctx context.Context, nip string) ([]uint, error) {
	var ids []uint
	err := database.Conn(ctx, r.DB).Model(&refModel.BugCategoryModel{}).
		Where("validator_nip = ?", nip).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *ReferenceRepository) ListCategories(ctx context.Context) ([]refModel.BugCategoryModel, error) {
	var rows []refModel.BugCategoryModel
	err := database.Conn(ctx, r.DB).Order("nama ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *ReferenceRepository) ListTeknisiByValidator(ctx context.Context, nip string) ([]refModel.TeknisiModel, error) {
	var rows []refModel.TeknisiModel
	err := database.Conn(ctx, r.DB).Where("validator_nip = ?", nip).Order("nama ASC").Find(&rows).Error
	return rows, err
}
