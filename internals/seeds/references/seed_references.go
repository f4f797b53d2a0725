package references

import (
	"log"

	"gorm.io/gorm"

	refModel "laporbug_backend/internals/features/references/model"
)

type ValidatorSeed struct {
	NIP  string `json:"nip"`
	Nama string `json:"nama"`
}

type TeknisiSeed struct {
	NIP          string `json:"nip"`
	Nama         string `json:"nama"`
	ValidatorNIP string `json:"validator_nip"`
}

type CategorySeed struct {
	ID           uint   `json:"id"`
	Nama         string `json:"nama"`
	ValidatorNIP string `json:"validator_nip"`
}

func SeedValidators(db *gorm.DB, inputs []ValidatorSeed) {
	for _, v := range inputs {
		var n int64
		db.Model(&refModel.ValidatorModel{}).Where("nip = ?", v.NIP).Count(&n)
		if n > 0 {
			log.Printf("ℹ️ Validator '%s' sudah ada, dilewati.", v.NIP)
			continue
		}
		if err := db.Create(&refModel.ValidatorModel{NIP: v.NIP, Nama: v.Nama}).Error; err != nil {
			log.Printf("❌ Gagal insert validator '%s': %v", v.NIP, err)
			continue
		}
		log.Printf("✅ Validator '%s' ditambahkan", v.NIP)
	}
}

func SeedTeknisi(db *gorm.DB, inputs []TeknisiSeed) {
	for _, t := range inputs {
		var n int64
		db.Model(&refModel.TeknisiModel{}).Where("nip = ?", t.NIP).Count(&n)
		if n > 0 {
			log.Printf("ℹ️ Teknisi '%s' sudah ada, dilewati.", t.NIP)
			continue
		}
		row := refModel.TeknisiModel{NIP: t.NIP, Nama: t.Nama, ValidatorNIP: t.ValidatorNIP}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Gagal insert teknisi '%s': %v", t.NIP, err)
			continue
		}
		log.Printf("✅ Teknisi '%s' ditambahkan", t.NIP)
	}
}

func SeedCategories(db *gorm.DB, inputs []CategorySeed) {
	for _, c := range inputs {
		var n int64
		q := db.Model(&refModel.BugCategoryModel{})
		if c.ID != 0 {
			q = q.Where("id = ?", c.ID)
		} else {
			q = q.Where("nama = ?", c.Nama)
		}
		q.Count(&n)
		if n > 0 {
			log.Printf("ℹ️ Kategori '%s' sudah ada, dilewati.", c.Nama)
			continue
		}
		row := refModel.BugCategoryModel{ID: c.ID, Nama: c.Nama, ValidatorNIP: c.ValidatorNIP}
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Gagal insert kategori '%s': %v", c.Nama, err)
			continue
		}
		log.Printf("✅ Kategori '%s' ditambahkan", c.Nama)
	}
}
