package helper

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"

	"laporbug_backend/internals/constants"
)

// ValidatePhotoSignature memastikan ekstensi diizinkan, magic number cocok dengan ekstensinya,
// DAN isi file benar-benar bisa di-decode sebagai gambar. Mengembalikan content type hasil deteksi.
func ValidatePhotoSignature(filename string, data []byte) (string, error) {
	ct, _, err := inspectPhoto(filename, data)
	return ct, err
}

func inspectPhoto(filename string, data []byte) (string, image.Image, error) {
	if !constants.IsAllowedPhotoExt(filename) {
		return "", nil, fmt.Errorf("file %s: ekstensi tidak diizinkan (jpg, jpeg, png, webp)", filename)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("file %s: kosong", filename)
	}

	detected := mimetype.Detect(data)
	ct := ""
	for _, allowed := range constants.AllowedMIMEForExt(filename) {
		if detected.Is(allowed) {
			ct = allowed
			break
		}
	}
	if ct == "" {
		return "", nil, fmt.Errorf("file %s: isi file (%s) tidak sesuai ekstensi %s",
			filename, detected.String(), strings.TrimPrefix(constants.PhotoExt(filename), "."))
	}

	// header bisa dipalsukan; decode penuh memastikan isinya gambar utuh
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("file %s: bukan gambar yang valid (%v)", filename, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return "", nil, fmt.Errorf("file %s: dimensi gambar kosong", filename)
	}
	return ct, img, nil
}
