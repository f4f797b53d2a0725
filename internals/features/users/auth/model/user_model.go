package model

import "time"

// UserModel adalah akun login. NaturalKey = NIK (warga), NIP (pencatat/validator/teknisi),
// atau username (super_admin/admin_kategori).
type UserModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username    string    `gorm:"type:varchar(60);not null;uniqueIndex;column:username" json:"username"`
	Password    string    `gorm:"type:varchar(100);not null;column:password" json:"-"`
	Role        string    `gorm:"type:varchar(20);not null;index;column:role" json:"role"`
	NaturalKey  string    `gorm:"type:varchar(40);not null;column:natural_key" json:"natural_key"`
	DisplayName string    `gorm:"type:varchar(120);column:display_name" json:"display_name"`
	IsActive    bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }
