package service

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// sagaStep adalah langkah yang sudah berhasil beserta cara membatalkannya.
type sagaStep struct {
	name string
	undo func(ctx context.Context) error
}

// uploadSaga mencatat langkah yang selesai; Compensate membatalkan dengan urutan terbalik.
type uploadSaga struct {
	label string
	done  []sagaStep
}

func newUploadSaga(label string) *uploadSaga {
	return &uploadSaga{label: label}
}

// Step menjalankan do; kalau sukses, undo dicatat untuk kompensasi.
func (s *uploadSaga) Step(ctx context.Context, name string, do func(ctx context.Context) error, undo func(ctx context.Context) error) error {
	if err := do(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	s.done = append(s.done, sagaStep{name: name, undo: undo})
	return nil
}

func (s *uploadSaga) Completed() []string {
	out := make([]string, 0, len(s.done))
	for _, st := range s.done {
		out = append(out, st.name)
	}
	return out
}

// Compensate menjalankan semua undo dari langkah terakhir ke pertama.
// Semua undo tetap dicoba walau ada yang gagal.
func (s *uploadSaga) Compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.done) - 1; i >= 0; i-- {
		st := s.done[i]
		if st.undo == nil {
			continue
		}
		if err := st.undo(ctx); err != nil {
			log.Printf("[ERROR][BugPhoto] %s: kompensasi %q gagal: %v", s.label, st.name, err)
			errs = append(errs, fmt.Errorf("undo %s: %w", st.name, err))
		}
	}
	s.done = nil
	return errors.Join(errs...)
}
