package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	database "laporbug_backend/internals/databases"
	historyModel "laporbug_backend/internals/features/bugs/bug_histories/model"
)

// HistoryRepository sengaja tidak punya Update/Delete.
type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Append(ctx context.Context, entry *historyModel.BugHistoryModel) error {
	if entry == nil || entry.BugReportID == 0 {
		return errors.New("history: id_bug_report wajib diisi")
	}
	if entry.ID != 0 {
		return errors.New("history: baris baru tidak boleh membawa id")
	}
	return database.Conn(ctx, r.DB).Create(entry).Error
}

// Timeline urut waktu naik, id sebagai pemecah seri.
func (r *HistoryRepository) Timeline(ctx context.Context, reportID uint) ([]historyModel.BugHistoryModel, error) {
	var rows []historyModel.BugHistoryModel
	err := database.Conn(ctx, r.DB).
		Where("id_bug_report = ?", reportID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *HistoryRepository) Count(ctx context.Context, reportID uint) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.DB).Model(&historyModel.BugHistoryModel{}).
		Where("id_bug_report = ?", reportID).
		Count(&n).Error
	return n, err
}
