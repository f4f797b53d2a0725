package seeds

import (
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"laporbug_backend/internals/seeds/references"
	users "laporbug_backend/internals/seeds/users/auth"
)

// SeedFile: satu file JSON berisi seluruh data awal.
type SeedFile struct {
	Validators []references.ValidatorSeed `json:"validators"`
	Teknisi    []references.TeknisiSeed   `json:"teknisi"`
	Categories []references.CategorySeed  `json:"categories"`
	Users      []users.UserSeed           `json:"users"`
}

func RunAllSeeds(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file seed:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file seed: %v", err)
		return
	}

	var data SeedFile
	if err := sonic.Unmarshal(file, &data); err != nil {
		log.Printf("❌ Gagal decode JSON seed: %v", err)
		return
	}

	//* Referensi
	references.SeedValidators(db, data.Validators)
	references.SeedTeknisi(db, data.Teknisi)
	references.SeedCategories(db, data.Categories)

	//* Akun
	users.SeedUsers(db, data.Users)
}
