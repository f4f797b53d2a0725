package dto

import (
	"time"

	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
)

// POST /api/bug-assign
type CreateBugAssignRequest struct {
	BugReportID uint   `json:"id_bug_report" validate:"required,gt=0"`
	NIPTeknisi  string `json:"nip_teknisi" validate:"required,max=40"`
}

// PUT /api/bug-assign/:id (teknisi)
type UpdateBugAssignRequest struct {
	Status         string  `json:"status" validate:"required"`
	CatatanTeknisi *string `json:"catatan_teknisi" validate:"omitempty,max=2000"`
}

// PUT /api/bug-assign/:id/validasi (validator)
type ValidateBugAssignRequest struct {
	ValidasiValidator string `json:"validasi_validator" validate:"required"`
}

type BugAssignResponse struct {
	ID             uint      `json:"id"`
	BugReportID    uint      `json:"id_bug_report"`
	NIPTeknisi     string    `json:"nip_teknisi"`
	NIPValidator   string    `json:"nip_validator"`
	CatatanTeknisi *string   `json:"catatan_teknisi"`
	Status         string    `json:"status"`
	Validasi       *string   `json:"validasi_validator"`
	TanggalTugas   time.Time `json:"tanggal_penugasan"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToBugAssignResponse(m *assignModel.BugAssignModel) BugAssignResponse {
	return BugAssignResponse{
		ID:             m.ID,
		BugReportID:    m.BugReportID,
		NIPTeknisi:     m.TeknisiNIP,
		NIPValidator:   m.ValidatorNIP,
		CatatanTeknisi: m.CatatanTeknisi,
		Status:         m.Status,
		Validasi:       m.Validasi,
		TanggalTugas:   m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToBugAssignResponses(rows []assignModel.BugAssignModel) []BugAssignResponse {
	out := make([]BugAssignResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToBugAssignResponse(&rows[i]))
	}
	return out
}
