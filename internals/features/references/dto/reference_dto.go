package dto

import refModel "laporbug_backend/internals/features/references/model"

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Nama string `json:"nama"`
}

type TeknisiResponse struct {
	NIP  string `json:"nip"`
	Nama string `json:"nama"`
}

func ToCategoryResponses(rows []refModel.BugCategoryModel) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryResponse{ID: r.ID, Nama: r.Nama})
	}
	return out
}

func ToTeknisiResponses(rows []refModel.TeknisiModel) []TeknisiResponse {
	out := make([]TeknisiResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TeknisiResponse{NIP: r.NIP, Nama: r.Nama})
	}
	return out
}
