package dto

import (
	"time"

	photoModel "laporbug_backend/internals/features/bugs/bug_photos/model"
)

type BugPhotoResponse struct {
	ID          uint      `json:"id"`
	BugReportID uint      `json:"id_bug_report"`
	URL         string    `json:"url"`
	NamaFile    string    `json:"nama_file"`
	Posisi      int       `json:"posisi"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToBugPhotoResponses(rows []photoModel.BugPhotoModel) []BugPhotoResponse {
	out := make([]BugPhotoResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, BugPhotoResponse{
			ID:          r.ID,
			BugReportID: r.BugReportID,
			URL:         r.URL,
			NamaFile:    r.NamaFile,
			Posisi:      r.Posisi,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}
