package model

import "time"

// Status laporan
const (
	StatusDiajukan        = "diajukan"
	StatusDiproses        = "diproses"
	StatusRevisiByAdmin   = "revisi_by_admin"
	StatusSelesai         = "selesai"
	StatusPendapatSelesai = "pendapat_selesai"
)

// Flag kehadiran foto (turunan dari jumlah baris bug_photos)
const (
	FotoAda      = "ada"
	FotoTidakAda = "tidak ada"
)

var reportStatuses = map[string]struct{}{
	StatusDiajukan:        {},
	StatusDiproses:        {},
	StatusRevisiByAdmin:   {},
	StatusSelesai:         {},
	StatusPendapatSelesai: {},
}

func IsValidStatus(s string) bool {
	_, ok := reportStatuses[s]
	return ok
}

func IsTerminal(s string) bool {
	return s == StatusSelesai || s == StatusPendapatSelesai
}

type BugReportModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CategoryID   uint      `gorm:"not null;index;column:id_bug_category" json:"id_bug_category"`
	Deskripsi    string    `gorm:"type:text;not null;column:deskripsi" json:"deskripsi"`
	Status       string    `gorm:"type:varchar(20);not null;default:'diajukan';index;column:status" json:"status"`
	FotoStatus   string    `gorm:"type:varchar(10);not null;default:'tidak ada';column:foto_status" json:"foto_status"`
	CatatanAdmin *string   `gorm:"type:text;column:catatan_admin" json:"catatan_admin,omitempty"`
	ReporterKind string    `gorm:"type:varchar(10);not null;default:'none';index:idx_bug_reports_reporter;column:reporter_kind" json:"reporter_kind"`
	ReporterKey  string    `gorm:"type:varchar(60);index:idx_bug_reports_reporter;column:reporter_key" json:"reporter_key,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:tanggal_laporan" json:"tanggal_laporan"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (BugReportModel) TableName() string { return "bug_reports" }

func (m *BugReportModel) Reporter() ReporterIdentity {
	return ReporterIdentity{Kind: ReporterKind(m.ReporterKind), Key: m.ReporterKey}
}

func (m *BugReportModel) SetReporter(r ReporterIdentity) {
	m.ReporterKind = string(r.Kind)
	m.ReporterKey = r.Key
}
