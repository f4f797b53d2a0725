// file: internals/helpers/oss/multipartx.go
package helper

import (
	"fmt"
	"io"
	"mime/multipart"
)

type CollectOptions struct {
	// Urutan kandidat nama field multipart untuk file (boleh kosong -> pakai default)
	FileFieldCandidates []string
}

var defaultFileFieldCandidates = []string{"files", "files[]", "file"}

// CollectUploadFiles mengumpulkan *FileHeader dari form multipart sesuai urutan kandidat field.
func CollectUploadFiles(form *multipart.Form, opt *CollectOptions) (out []*multipart.FileHeader, usedKeys []string) {
	if form == nil || form.File == nil {
		return nil, nil
	}
	candidates := defaultFileFieldCandidates
	if opt != nil && len(opt.FileFieldCandidates) > 0 {
		candidates = opt.FileFieldCandidates
	}

	for _, key := range candidates {
		fhs, ok := form.File[key]
		if !ok || len(fhs) == 0 {
			continue
		}
		usedKeys = append(usedKeys, key)
		for _, fh := range fhs {
			if fh != nil && fh.Filename != "" {
				out = append(out, fh)
			}
		}
	}
	return out, usedKeys
}

// ReadFileHeader membaca isi file upload penuh ke memori, dengan batas ukuran.
func ReadFileHeader(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && fh.Size > maxSize {
		return nil, fmt.Errorf("file %s melebihi batas %d MB", fh.Filename, maxSize/(1024*1024))
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	r := io.Reader(src)
	if maxSize > 0 {
		r = io.LimitReader(src, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("file %s melebihi batas %d MB", fh.Filename, maxSize/(1024*1024))
	}
	return data, nil
}
