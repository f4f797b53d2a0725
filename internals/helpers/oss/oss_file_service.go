package helper

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BlobService adalah facade simpan/hapus file yang dipakai service foto.
type BlobService interface {
	Put(ctx context.Context, dir string, data []byte, filename, contentType string) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

// --------------------------------------------------
// Implementasi berbasis Aliyun OSS (OSSService)
// --------------------------------------------------

type OSSBlobService struct {
	svc *OSSService
}

// Buat instance dari ENV. prefix opsional (contoh: "bug-photos")
func NewOSSBlobServiceFromEnv(prefix string) (*OSSBlobService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSBlobService{svc: s}, nil
}

func (b *OSSBlobService) Put(ctx context.Context, dir string, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fiber.NewError(fiber.StatusBadRequest, "File kosong")
	}
	key, err := b.svc.UploadBytes(ctx, dir, data, filename, contentType)
	if err != nil {
		return "", fmt.Errorf("oss put %s: %w", filename, err)
	}
	return b.svc.PublicURL(key), nil
}

func (b *OSSBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if strings.TrimSpace(publicURL) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "URL kosong")
	}
	if err := b.svc.DeleteByPublicURL(ctx, publicURL); err != nil {
		return fmt.Errorf("oss delete: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Penyimpanan in-memory (dev lokal tanpa kredensial OSS)
// --------------------------------------------------

type MemoryBlobService struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryBlobService(baseURL string) *MemoryBlobService {
	if baseURL == "" {
		baseURL = "memory://blobs"
	}
	return &MemoryBlobService{BaseURL: strings.TrimRight(baseURL, "/"), objects: map[string][]byte{}}
}

func (m *MemoryBlobService) Put(_ context.Context, dir string, data []byte, filename, _ string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	url := fmt.Sprintf("%s/%s/%s_%s%s", m.BaseURL, strings.Trim(dir, "/"), uuid.NewString()[:8], slugify(base), ext)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[url] = append([]byte(nil), data...)
	return url, nil
}

func (m *MemoryBlobService) DeleteByPublicURL(_ context.Context, publicURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[publicURL]; !ok {
		return fmt.Errorf("object tidak ditemukan: %s", publicURL)
	}
	delete(m.objects, publicURL)
	return nil
}

// Get mengembalikan isi objek (untuk test).
func (m *MemoryBlobService) Get(publicURL string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[publicURL]
	return data, ok
}

func (m *MemoryBlobService) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// --------------------------------------------------
// Mock untuk unit test
// --------------------------------------------------

type MockBlobService struct {
	PutFn               func(ctx context.Context, dir string, data []byte, filename, contentType string) (string, error)
	DeleteByPublicURLFn func(ctx context.Context, publicURL string) error
}

func (m *MockBlobService) Put(ctx context.Context, dir string, data []byte, filename, contentType string) (string, error) {
	if m.PutFn == nil {
		return "", errors.New("not implemented")
	}
	return m.PutFn(ctx, dir, data, filename, contentType)
}

func (m *MockBlobService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	if m.DeleteByPublicURLFn == nil {
		return errors.New("not implemented")
	}
	return m.DeleteByPublicURLFn(ctx, publicURL)
}
