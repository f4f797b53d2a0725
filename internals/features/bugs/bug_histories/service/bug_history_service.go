package service

import (
	"context"

	"gorm.io/gorm"

	"laporbug_backend/internals/features/bugs/access"
	historyModel "laporbug_backend/internals/features/bugs/bug_histories/model"
	historyRepo "laporbug_backend/internals/features/bugs/bug_histories/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

// HistoryService: satu-satunya pintu tulis timeline laporan.
type HistoryService struct {
	Repo   *historyRepo.HistoryRepository
	Loader *access.Loader
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{
		Repo:   historyRepo.NewHistoryRepository(db),
		Loader: access.NewLoader(db),
	}
}

// Record menambah satu baris timeline. Ikut transaksi di ctx kalau ada.
func (s *HistoryService) Record(ctx context.Context, actor helperAuth.Principal, reportID uint, label, note string, meta map[string]any) error {
	entry := &historyModel.BugHistoryModel{
		BugReportID: reportID,
		ActorID:     actor.AccountID,
		ActorRole:   actor.Role,
		Status:      label,
		Keterangan:  note,
	}
	if len(meta) > 0 {
		entry.Meta = meta
	}
	if err := s.Repo.Append(ctx, entry); err != nil {
		return helper.ErrUpstream(err, "Gagal mencatat riwayat laporan")
	}
	return nil
}

// Timeline untuk tampilan riwayat; akses baca diperluas ke teknisi yang ditugaskan.
func (s *HistoryService) Timeline(ctx context.Context, p helperAuth.Principal, reportID uint) ([]historyModel.BugHistoryModel, error) {
	if _, _, err := s.Loader.Authorize(ctx, p, reportID, access.CanReadReportExtended,
		"Anda tidak memiliki akses ke riwayat laporan ini"); err != nil {
		return nil, err
	}
	rows, err := s.Repo.Timeline(ctx, reportID)
	if err != nil {
		return nil, helper.ErrUpstream(err, "Gagal mengambil riwayat laporan")
	}
	return rows, nil
}
