package model

import "time"

// ValidatorModel: petugas validator, dikenali lewat NIP.
type ValidatorModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	NIP       string    `gorm:"type:varchar(40);not null;uniqueIndex;column:nip" json:"nip"`
	Nama      string    `gorm:"type:varchar(120);not null;column:nama" json:"nama"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (ValidatorModel) TableName() string { return "validators" }

// TeknisiModel: teknisi selalu terikat ke satu validator.
type TeknisiModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	NIP          string    `gorm:"type:varchar(40);not null;uniqueIndex;column:nip" json:"nip"`
	Nama         string    `gorm:"type:varchar(120);not null;column:nama" json:"nama"`
	ValidatorNIP string    `gorm:"type:varchar(40);not null;index;column:validator_nip" json:"validator_nip"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (TeknisiModel) TableName() string { return "teknisi" }

// BugCategoryModel mengikat tepat satu validator per kategori.
type BugCategoryModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Nama         string    `gorm:"type:varchar(120);not null;column:nama" json:"nama"`
	ValidatorNIP string    `gorm:"type:varchar(40);not null;index;column:validator_nip" json:"validator_nip"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (BugCategoryModel) TableName() string { return "bug_categories" }
