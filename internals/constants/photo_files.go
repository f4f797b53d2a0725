package constants

import (
	"path/filepath"
	"strings"
)

// Batas foto per laporan.
const MaxBugPhotos = 5

// Ekstensi foto yang diterima → MIME yang wajib cocok dengan signature file.
var allowedPhotoExt = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".webp": {"image/webp"},
}

func PhotoExt(filename string) string {
	return strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
}

func IsAllowedPhotoExt(filename string) bool {
	_, ok := allowedPhotoExt[PhotoExt(filename)]
	return ok
}

// AllowedMIMEForExt mengembalikan daftar MIME yang sah untuk ekstensi file.
func AllowedMIMEForExt(filename string) []string {
	return allowedPhotoExt[PhotoExt(filename)]
}
