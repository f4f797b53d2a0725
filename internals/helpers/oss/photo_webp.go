package helper

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

/* =======================================================================
   Normalisasi foto laporan → WebP (ENV-driven)
======================================================================= */

type WebPOptions struct {
	Quality float32 // 1..100
	MaxW    int     // 0 = tanpa batas
	MaxH    int
}

func envInt(key string, def int) int {
	if v := getEnv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float32) float32 {
	if v := getEnv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			return float32(f)
		}
	}
	return def
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		Quality: envFloat("BUG_PHOTO_WEBP_QUALITY", 85),
		MaxW:    envInt("BUG_PHOTO_MAX_W", 1920),
		MaxH:    envInt("BUG_PHOTO_MAX_H", 1920),
	}
}

// PreparedPhoto: hasil validasi + normalisasi, siap di-put ke blob store.
type PreparedPhoto struct {
	Filename    string // nama asli dari client
	StoredName  string // nama objek (.webp)
	SourceType  string // MIME hasil deteksi file asli
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

// PreparePhoto memvalidasi file (ekstensi, signature, decode) lalu mengecilkan
// dan meng-encode ulang ke WebP. Semua error menyebut nama file.
func PreparePhoto(filename string, data []byte, opt WebPOptions) (*PreparedPhoto, error) {
	srcType, img, err := inspectPhoto(filename, data)
	if err != nil {
		return nil, err
	}
	img = downscaleIfNeeded(img, opt.MaxW, opt.MaxH)

	q := opt.Quality
	if q <= 0 || q > 100 {
		q = 85
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: q}); err != nil {
		return nil, fmt.Errorf("file %s: gagal encode webp: %w", filename, err)
	}

	b := img.Bounds()
	return &PreparedPhoto{
		Filename:    filename,
		StoredName:  strings.TrimSuffix(filename, filepath.Ext(filename)) + ".webp",
		SourceType:  srcType,
		ContentType: "image/webp",
		Data:        buf.Bytes(),
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

// Resize dengan menjaga rasio; CatmullRom untuk kualitas.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW <= 0 || w <= maxW) && (maxH <= 0 || h <= maxH) {
		return src
	}
	scale := 1.0
	if maxW > 0 {
		scale = math.Min(scale, float64(maxW)/float64(w))
	}
	if maxH > 0 {
		scale = math.Min(scale, float64(maxH)/float64(h))
	}
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
