package model

import "time"

type BugPhotoModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	BugReportID uint      `gorm:"not null;uniqueIndex:uq_bug_photos_report_position,priority:1;column:id_bug_report" json:"id_bug_report"`
	URL         string    `gorm:"type:text;not null;column:url" json:"url"`
	NamaFile    string    `gorm:"type:varchar(255);not null;column:nama_file" json:"nama_file"`
	Posisi      int       `gorm:"not null;uniqueIndex:uq_bug_photos_report_position,priority:2;column:posisi" json:"posisi"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (BugPhotoModel) TableName() string { return "bug_photos" }
