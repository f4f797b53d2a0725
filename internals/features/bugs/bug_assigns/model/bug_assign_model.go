package model

import (
	"strings"
	"time"
)

// Status penugasan (perhatikan: "pendapat selesai" pakai spasi)
const (
	AssignDiproses        = "diproses"
	AssignSelesai         = "selesai"
	AssignPendapatSelesai = "pendapat selesai"
)

// Putusan validator
const (
	VerdictDisetujui      = "disetujui"
	VerdictTidakDisetujui = "tidak disetujui"
)

func IsValidAssignStatus(s string) bool {
	switch s {
	case AssignDiproses, AssignSelesai, AssignPendapatSelesai:
		return true
	}
	return false
}

// NormalizeAssignStatus menerima juga "pendapat_selesai".
func NormalizeAssignStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "pendapat_selesai" {
		return AssignPendapatSelesai
	}
	return s
}

// NormalizeVerdict: "tidak_disetujui" dan "tidak disetujui" sama saja. ok=false kalau tidak dikenal.
func NormalizeVerdict(v string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case VerdictDisetujui:
		return VerdictDisetujui, true
	case VerdictTidakDisetujui, "tidak_disetujui":
		return VerdictTidakDisetujui, true
	}
	return "", false
}

type BugAssignModel struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BugReportID    uint      `gorm:"not null;uniqueIndex:uq_bug_assigns_report;column:id_bug_report" json:"id_bug_report"`
	TeknisiNIP     string    `gorm:"type:varchar(40);not null;index;column:nip_teknisi" json:"nip_teknisi"`
	ValidatorNIP   string    `gorm:"type:varchar(40);not null;index;column:nip_validator" json:"nip_validator"`
	CatatanTeknisi *string   `gorm:"type:text;column:catatan_teknisi" json:"catatan_teknisi,omitempty"`
	Status         string    `gorm:"type:varchar(20);not null;default:'diproses';column:status" json:"status"`
	Validasi       *string   `gorm:"type:varchar(20);column:validasi_validator" json:"validasi_validator"`
	CreatedAt      time.Time `gorm:"autoCreateTime;column:tanggal_penugasan" json:"tanggal_penugasan"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (BugAssignModel) TableName() string { return "bug_assigns" }
