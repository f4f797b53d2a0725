package service

import (
	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
)

// ReportStatusFor memetakan status penugasan ke status laporan (dipakai saat cascade).
func ReportStatusFor(assignStatus string) string {
	switch assignStatus {
	case assignModel.AssignSelesai:
		return reportModel.StatusSelesai
	case assignModel.AssignPendapatSelesai:
		return reportModel.StatusPendapatSelesai
	default:
		return reportModel.StatusDiproses
	}
}
