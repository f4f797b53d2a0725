package dto

import (
	"time"

	assignDTO "laporbug_backend/internals/features/bugs/bug_assigns/dto"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
)

// POST /api/bug-report
type CreateBugReportRequest struct {
	CategoryID uint   `json:"id_bug_category" validate:"required,gt=0"`
	Deskripsi  string `json:"deskripsi" validate:"required,max=5000"`
}

// PUT /api/bug-report/:id
// Validator/super_admin: status (+ nip_teknisi saat diproses) + catatan.
// Admin kategori: hanya catatan_admin + koreksi kategori.
type UpdateBugReportRequest struct {
	Status       string  `json:"status" validate:"omitempty,oneof=diajukan diproses revisi_by_admin selesai pendapat_selesai"`
	CatatanAdmin *string `json:"catatan_admin" validate:"omitempty,max=2000"`
	NIPTeknisi   string  `json:"nip_teknisi" validate:"omitempty,max=40"`
	CategoryID   *uint   `json:"id_bug_category" validate:"omitempty,gt=0"`
}

type BugReportResponse struct {
	ID             uint                         `json:"id"`
	CategoryID     uint                         `json:"id_bug_category"`
	Deskripsi      string                       `json:"deskripsi"`
	Status         string                       `json:"status"`
	FotoStatus     string                       `json:"foto_status"`
	CatatanAdmin   *string                      `json:"catatan_admin"`
	Reporter       reportModel.ReporterIdentity `json:"pelapor"`
	TanggalLaporan time.Time                    `json:"tanggal_laporan"`
	UpdatedAt      time.Time                    `json:"updated_at"`
}

// TransitionResponse: laporan + penugasan (kalau transisi ke diproses membuat/menemukan penugasan).
type TransitionResponse struct {
	Report        BugReportResponse            `json:"report"`
	Assign        *assignDTO.BugAssignResponse `json:"assign,omitempty"`
	AssignCreated bool                         `json:"assign_created"`
}

func ToBugReportResponse(m *reportModel.BugReportModel) BugReportResponse {
	return BugReportResponse{
		ID:             m.ID,
		CategoryID:     m.CategoryID,
		Deskripsi:      m.Deskripsi,
		Status:         m.Status,
		FotoStatus:     m.FotoStatus,
		CatatanAdmin:   m.CatatanAdmin,
		Reporter:       m.Reporter(),
		TanggalLaporan: m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToBugReportResponses(rows []reportModel.BugReportModel) []BugReportResponse {
	out := make([]BugReportResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToBugReportResponse(&rows[i]))
	}
	return out
}
