package model

import (
	"time"

	"gorm.io/datatypes"
)

// BugHistoryModel: timeline laporan. Hanya insert, tidak pernah diubah/dihapus.
type BugHistoryModel struct {
	ID          uint              `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BugReportID uint              `gorm:"not null;index:idx_bug_histories_report_time,priority:1;column:id_bug_report" json:"id_bug_report"`
	ActorID     uint              `gorm:"not null;column:id_account" json:"id_account"`
	ActorRole   string            `gorm:"type:varchar(20);not null;column:actor_role" json:"actor_role"`
	Status      string            `gorm:"type:varchar(20);not null;column:status" json:"status"`
	Keterangan  string            `gorm:"type:text;column:keterangan" json:"keterangan"`
	Meta        datatypes.JSONMap `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;index:idx_bug_histories_report_time,priority:2;column:created_at" json:"created_at"`
}

func (BugHistoryModel) TableName() string { return "bug_histories" }
