package dto

import (
	"time"

	historyModel "laporbug_backend/internals/features/bugs/bug_histories/model"
)

type BugHistoryResponse struct {
	ID          uint           `json:"id"`
	BugReportID uint           `json:"id_bug_report"`
	ActorID     uint           `json:"id_account"`
	ActorRole   string         `json:"actor_role"`
	Status      string         `json:"status"`
	Keterangan  string         `json:"keterangan"`
	Meta        map[string]any `json:"meta,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ToBugHistoryResponses(rows []historyModel.BugHistoryModel) []BugHistoryResponse {
	out := make([]BugHistoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, BugHistoryResponse{
			ID:          r.ID,
			BugReportID: r.BugReportID,
			ActorID:     r.ActorID,
			ActorRole:   r.ActorRole,
			Status:      r.Status,
			Keterangan:  r.Keterangan,
			Meta:        r.Meta,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}
