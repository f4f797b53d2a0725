// Package dbtest menyiapkan database SQLite sementara untuk test repository & service.
package dbtest

import (
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "laporbug_backend/internals/databases"
	refModel "laporbug_backend/internals/features/references/model"
)

// NIP fixture: kategori 3 dipegang validator V1, kategori 4 dipegang V2.
const (
	ValidatorV1 = "198701012010011001"
	ValidatorV2 = "198902022011012002"
	TeknisiT1   = "199003032015031003" // bawahan V1
	TeknisiT2   = "199104042016041004" // bawahan V2

	CategoryV1 uint = 3
	CategoryV2 uint = 4
)

// Open membuka SQLite di t.TempDir() dan menjalankan migrasi yang sama dengan produksi.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "laporbug.sqlite") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := database.Migrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// OpenWithReferences = Open + data referensi validator/teknisi/kategori.
func OpenWithReferences(t *testing.T) *gorm.DB {
	t.Helper()
	db := Open(t)
	SeedReferences(t, db)
	return db
}

func SeedReferences(t *testing.T, db *gorm.DB) {
	t.Helper()

	rows := []any{
		&refModel.ValidatorModel{NIP: ValidatorV1, Nama: "Rina Validator"},
		&refModel.ValidatorModel{NIP: ValidatorV2, Nama: "Budi Validator"},
		&refModel.TeknisiModel{NIP: TeknisiT1, Nama: "Andi Teknisi", ValidatorNIP: ValidatorV1},
		&refModel.TeknisiModel{NIP: TeknisiT2, Nama: "Sari Teknisi", ValidatorNIP: ValidatorV2},
		&refModel.BugCategoryModel{ID: CategoryV1, Nama: "Portal Pengaduan", ValidatorNIP: ValidatorV1},
		&refModel.BugCategoryModel{ID: CategoryV2, Nama: "Perizinan Online", ValidatorNIP: ValidatorV2},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed reference %T: %v", r, err)
		}
	}
}
