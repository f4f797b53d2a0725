package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "laporbug_backend/internals/databases"
	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
)

type AssignRepository struct {
	DB *gorm.DB
}

func NewAssignRepository(db *gorm.DB) *AssignRepository {
	return &AssignRepository{DB: db}
}

func (r *AssignRepository) Create(ctx context.Context, m *assignModel.BugAssignModel) error {
	return database.Conn(ctx, r.DB).Create(m).Error
}

func (r *AssignRepository) FindByID(ctx context.Context, id uint) (*assignModel.BugAssignModel, error) {
	var m assignModel.BugAssignModel
	if err := database.Conn(ctx, r.DB).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// FindByReport mengembalikan (nil, nil) kalau laporan belum punya penugasan.
func (r *AssignRepository) FindByReport(ctx context.Context, reportID uint) (*assignModel.BugAssignModel, error) {
	var m assignModel.BugAssignModel
	err := database.Conn(ctx, r.DB).Where("id_bug_report = ?", reportID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *AssignRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return database.Conn(ctx, r.DB).Model(&assignModel.BugAssignModel{}).
		Where("id = ?", id).
		Updates(fields).Error
}

type ListFilter struct {
	TeknisiNIP   string
	ValidatorNIP string
	Status       string
	BugReportID  uint
	Limit        int
	Offset       int
}

func (r *AssignRepository) List(ctx context.Context, f ListFilter) ([]assignModel.BugAssignModel, int64, error) {
	q := database.Conn(ctx, r.DB).Model(&assignModel.BugAssignModel{})
	if f.TeknisiNIP != "" {
		q = q.Where("nip_teknisi = ?", f.TeknisiNIP)
	}
	if f.ValidatorNIP != "" {
		q = q.Where("nip_validator = ?", f.ValidatorNIP)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BugReportID != 0 {
		q = q.Where("id_bug_report = ?", f.BugReportID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []assignModel.BugAssignModel
	q = q.Order("tanggal_penugasan DESC, id DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ReportIDsByTeknisi: laporan yang ditugaskan ke teknisi.
func (r *AssignRepository) ReportIDsByTeknisi(ctx context.Context, nip string) ([]uint, error) {
	var ids []uint
	err := database.Conn(ctx, r.DB).Model(&assignModel.BugAssignModel{}).
		Where("nip_teknisi = ?", nip).
		Pluck("id_bug_report", &ids).Error
	return ids, err
}

func (r *AssignRepository) DeleteByReport(ctx context.Context, reportID uint) error {
	return database.Conn(ctx, r.DB).
		Where("id_bug_report = ?", reportID).
		Delete(&assignModel.BugAssignModel{}).Error
}

// CreateIfAbsent insert dengan ON CONFLICT (id_bug_report) DO NOTHING.
// created=false berarti laporan sudah punya penugasan (termasuk insert paralel yang menang duluan).
func (r *AssignRepository) CreateIfAbsent(ctx context.Context, m *assignModel.BugAssignModel) (bool, error) {
	res := database.Conn(ctx, r.DB).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id_bug_report"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
