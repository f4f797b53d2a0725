package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 37), G: uint8(y * 53), B: 180, A: 255})
		}
	}
	return img
}

func encodeTestImage(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, testImage(w, h), nil)
	case "webp":
		err = webp.Encode(&buf, testImage(w, h), &webp.Options{Quality: 80})
	default:
		err = png.Encode(&buf, testImage(w, h))
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestValidatePhotoSignature(t *testing.T) {
	pngBytes := encodeTestImage(t, "png", 4, 4)
	jpegBytes := encodeTestImage(t, "jpeg", 4, 4)
	webpBytes := encodeTestImage(t, "webp", 4, 4)

	cases := []struct {
		name     string
		filename string
		data     []byte
		wantCT   string
		wantErr  string
	}{
		{"png valid", "bukti.png", pngBytes, "image/png", ""},
		{"jpg valid", "bukti.JPG", jpegBytes, "image/jpeg", ""},
		{"jpeg valid", "bukti.jpeg", jpegBytes, "image/jpeg", ""},
		{"webp valid", "bukti.webp", webpBytes, "image/webp", ""},
		{"ekstensi ditolak", "bukti.gif", []byte("GIF89a"), "", "ekstensi tidak diizinkan"},
		{"isi tidak cocok", "palsu.png", []byte("ini bukan gambar"), "", "palsu.png"},
		{"jpeg berisi png", "campur.jpg", pngBytes, "", "tidak sesuai ekstensi"},
		{"header png tanpa gambar", "bukti.png", []byte("\x89PNG\r\n\x1a\n" + "not really an image at all"), "", "bukan gambar yang valid"},
		{"png terpotong", "potong.png", pngBytes[:len(pngBytes)/2], "", "potong.png"},
		{"kosong", "kosong.png", nil, "", "kosong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ct, err := ValidatePhotoSignature(tc.filename, tc.data)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("err = %v, want contains %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if ct != tc.wantCT {
				t.Fatalf("content type = %q, want %q", ct, tc.wantCT)
			}
		})
	}
}

func TestPreparePhotoNormalizesToWebP(t *testing.T) {
	src := encodeTestImage(t, "png", 40, 20)

	pp, err := PreparePhoto("Bukti Rusak.png", src, WebPOptions{Quality: 80, MaxW: 10, MaxH: 10})
	if err != nil {
		t.Fatalf("PreparePhoto() error = %v", err)
	}
	if pp.StoredName != "Bukti Rusak.webp" || pp.ContentType != "image/webp" || pp.SourceType != "image/png" {
		t.Fatalf("prepared = %+v", pp)
	}
	if !mimetype.Detect(pp.Data).Is("image/webp") {
		t.Fatalf("stored data detected as %s", mimetype.Detect(pp.Data))
	}
	if pp.Width != 10 || pp.Height != 5 {
		t.Fatalf("size = %dx%d, want 10x5", pp.Width, pp.Height)
	}

	small, err := PreparePhoto("kecil.jpg", encodeTestImage(t, "jpeg", 6, 3), WebPOptions{MaxW: 100, MaxH: 100})
	if err != nil {
		t.Fatalf("PreparePhoto(jpeg) error = %v", err)
	}
	if small.Width != 6 || small.Height != 3 {
		t.Fatalf("small image must not be resized, got %dx%d", small.Width, small.Height)
	}

	if _, err := PreparePhoto("bukti.png", []byte("\x89PNG\r\n\x1a\nxxxx"), WebPOptions{}); err == nil {
		t.Fatal("PreparePhoto() must reject a header-only png")
	}
}

func TestExtractKeyFromPublicURL(t *testing.T) {
	key, err := ExtractKeyFromPublicURL("https://bucket.oss-ap-southeast-5.aliyuncs.com/bug-photos/report-1/a.png", "https://bucket.oss-ap-southeast-5.aliyuncs.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if key != "bug-photos/report-1/a.png" {
		t.Fatalf("key = %q", key)
	}
}
