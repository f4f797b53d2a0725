package repository

import (
	"context"

	"gorm.io/gorm"

	database "laporbug_backend/internals/databases"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(ctx context.Context, m *reportModel.BugReportModel) error {
	return database.Conn(ctx, r.DB).Create(m).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint) (*reportModel.BugReportModel, error) {
	var m reportModel.BugReportModel
	if err := database.Conn(ctx, r.DB).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReportRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return database.Conn(ctx, r.DB).Model(&reportModel.BugReportModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.Update(ctx, id, map[string]any{"status": status})
}

func (r *ReportRepository) SetPhotoFlag(ctx context.Context, id uint, flag string) error {
	return r.Update(ctx, id, map[string]any{"foto_status": flag})
}

func (r *ReportRepository) Delete(ctx context.Context, id uint) error {
	return database.Conn(ctx, r.DB).Delete(&reportModel.BugReportModel{}, id).Error
}

// ListFilter: scope (reporter / kategori / id) diisi service sesuai role.
type ListFilter struct {
	ReporterKind string
	ReporterKey  string
	CategoryIDs  []uint
	ReportIDs    []uint
	RestrictIDs  bool // true → hanya ReportIDs (boleh kosong = tidak ada hasil)
	RestrictCats bool
	Status       string
	CategoryID   uint
	Limit        int
	Offset       int
}

func (r *ReportRepository) List(ctx context.Context, f ListFilter) ([]reportModel.BugReportModel, int64, error) {
	q := database.Conn(ctx, r.DB).Model(&reportModel.BugReportModel{})
	if f.ReporterKind != "" {
		q = q.Where("reporter_kind = ? AND reporter_key = ?", f.ReporterKind, f.ReporterKey)
	}
	if f.RestrictCats {
		if len(f.CategoryIDs) == 0 {
			return []reportModel.BugReportModel{}, 0, nil
		}
		q = q.Where("id_bug_category IN ?", f.CategoryIDs)
	}
	if f.RestrictIDs {
		if len(f.ReportIDs) == 0 {
			return []reportModel.BugReportModel{}, 0, nil
		}
		q = q.Where("id IN ?", f.ReportIDs)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CategoryID != 0 {
		q = q.Where("id_bug_category = ?", f.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reportModel.BugReportModel
	q = q.Order("tanggal_laporan DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
