package service

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	database "laporbug_backend/internals/databases"
	"laporbug_backend/internals/features/bugs/access"
	photoModel "laporbug_backend/internals/features/bugs/bug_photos/model"
	photoRepo "laporbug_backend/internals/features/bugs/bug_photos/repository"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	reportRepo "laporbug_backend/internals/features/bugs/bug_reports/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
	helperOSS "laporbug_backend/internals/helpers/oss"
)

// UploadFile: satu file hasil baca multipart.
type UploadFile struct {
	Filename string
	Data     []byte
}

type PhotoService struct {
	UoW     *database.UnitOfWork
	Photos  *photoRepo.PhotoRepository
	Reports *reportRepo.ReportRepository
	Loader  *access.Loader
	Blob    helperOSS.BlobService
	MaxSize int64
	Dir     string
	WebP    helperOSS.WebPOptions
}

func NewPhotoService(db *gorm.DB, blob helperOSS.BlobService, maxSize int64) *PhotoService {
	return &PhotoService{
		UoW:     database.NewUnitOfWork(db),
		Photos:  photoRepo.NewPhotoRepository(db),
		Reports: reportRepo.NewReportRepository(db),
		Loader:  access.NewLoader(db),
		Blob:    blob,
		MaxSize: maxSize,
		WebP:    helperOSS.DefaultWebPOptionsFromEnv(),
	}
}

/* ===================== LIST ===================== */

func (s *PhotoService) List(ctx context.Context, p helperAuth.Principal, reportID uint) ([]photoModel.BugPhotoModel, error) {
	if _, _, err := s.Loader.Authorize(ctx, p, reportID, access.CanReadReportExtended,
		"Anda tidak memiliki akses ke foto laporan ini"); err != nil {
		return nil, err
	}
	rows, err := s.Photos.ListByReport(ctx, reportID)
	if err != nil {
		return nil, helper.ErrUpstream(err, "Gagal mengambil foto")
	}
	return rows, nil
}

/* ===================== UPLOAD ===================== */

// Upload: semua-atau-tidak sama sekali. Cek jumlah foto dilakukan baca-lalu-tulis,
// dua upload paralel pada laporan yang sama masih bisa melewati batas 5.
func (s *PhotoService) Upload(ctx context.Context, p helperAuth.Principal, reportID uint, files []UploadFile) ([]photoModel.BugPhotoModel, error) {
	if len(files) == 0 {
		return nil, helper.ErrValidation("Minimal 1 foto harus diunggah")
	}
	if len(files) > constants.MaxBugPhotos {
		return nil, helper.ErrValidation("Maksimal %d foto per unggahan", constants.MaxBugPhotos)
	}

	report, _, err := s.Loader.Authorize(ctx, p, reportID, access.CanManagePhotos,
		"Hanya pelapor yang boleh mengelola foto laporan ini")
	if err != nil {
		return nil, err
	}

	existing, err := s.Photos.CountByReport(ctx, reportID)
	if err != nil {
		return nil, helper.ErrUpstream(err, "Gagal menghitung foto")
	}
	if existing >= constants.MaxBugPhotos {
		return nil, helper.ErrValidation("Laporan sudah memiliki %d foto (maksimal %d)", existing, constants.MaxBugPhotos)
	}
	if int(existing)+len(files) > constants.MaxBugPhotos {
		return nil, helper.ErrValidation("Maksimal %d foto per laporan, sisa slot %d", constants.MaxBugPhotos, constants.MaxBugPhotos-int(existing))
	}

	// validasi + normalisasi semua file dulu; belum ada yang ditulis
	prepared := make([]*helperOSS.PreparedPhoto, len(files))
	for i, f := range files {
		if s.MaxSize > 0 && int64(len(f.Data)) > s.MaxSize {
			return nil, helper.ErrValidation("File %s melebihi batas ukuran %d KB", f.Filename, s.MaxSize/1024)
		}
		pp, err := helperOSS.PreparePhoto(f.Filename, f.Data, s.WebP)
		if err != nil {
			return nil, helper.ErrValidation("%s", err.Error())
		}
		prepared[i] = pp
	}

	pos, err := s.Photos.MaxPosition(ctx, reportID)
	if err != nil {
		return nil, helper.ErrUpstream(err, "Gagal membaca posisi foto")
	}

	dir := s.Dir
	if dir == "" {
		dir = fmt.Sprintf("report-%d", reportID)
	}

	saga := newUploadSaga(fmt.Sprintf("report=%d", reportID))
	created := make([]photoModel.BugPhotoModel, 0, len(files))
	run := func() error {
		for i, f := range prepared {
			var url string
			if err := saga.Step(ctx, "put:"+f.Filename,
				func(ctx context.Context) error {
					u, err := s.Blob.Put(ctx, dir, f.Data, f.StoredName, f.ContentType)
					url = u
					return err
				},
				func(ctx context.Context) error { return s.Blob.DeleteByPublicURL(ctx, url) },
			); err != nil {
				return err
			}

			row := photoModel.BugPhotoModel{
				BugReportID: reportID,
				URL:         url,
				NamaFile:    f.Filename,
				Posisi:      pos + i + 1,
			}
			if err := saga.Step(ctx, "insert:"+f.Filename,
				func(ctx context.Context) error { return s.Photos.Create(ctx, &row) },
				func(ctx context.Context) error { return s.Photos.Delete(ctx, row.ID) },
			); err != nil {
				return err
			}
			created = append(created, row)
		}

		if report.FotoStatus != reportModel.FotoAda {
			prev := report.FotoStatus
			return saga.Step(ctx, "flag:ada",
				func(ctx context.Context) error { return s.Reports.SetPhotoFlag(ctx, reportID, reportModel.FotoAda) },
				func(ctx context.Context) error { return s.Reports.SetPhotoFlag(ctx, reportID, prev) },
			)
		}
		return nil
	}

	if err := run(); err != nil {
		// kompensasi tetap jalan walau ctx request sudah dibatalkan
		if cerr := saga.Compensate(context.WithoutCancel(ctx)); cerr != nil {
			log.Printf("[ERROR][BugPhoto] report=%d kompensasi tidak tuntas: %v", reportID, cerr)
		}
		return nil, helper.ErrUpstream(err, "Gagal mengunggah foto, semua perubahan dibatalkan")
	}

	log.Printf("[INFO][BugPhoto] report=%d uploaded=%d total=%d", reportID, len(created), int(existing)+len(created))
	return created, nil
}

/* ===================== DELETE ===================== */

type DeleteResult struct {
	BugReportID uint   `json:"id_bug_report"`
	Remaining   int64  `json:"sisa_foto"`
	FotoStatus  string `json:"foto_status"`
}

// Delete: hapus blob (best-effort), hapus baris, lalu hitung ulang flag foto.
func (s *PhotoService) Delete(ctx context.Context, p helperAuth.Principal, photoID uint) (*DeleteResult, error) {
	photo, err := s.Photos.FindByID(ctx, photoID)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.ErrNotFound("Foto tidak ditemukan")
		}
		return nil, helper.ErrUpstream(err, "Gagal memuat foto")
	}
	if _, _, err := s.Loader.Authorize(ctx, p, photo.BugReportID, access.CanManagePhotos,
		"Hanya pelapor yang boleh mengelola foto laporan ini"); err != nil {
		return nil, err
	}

	if err := s.Blob.DeleteByPublicURL(ctx, photo.URL); err != nil {
		log.Printf("[WARN][BugPhoto] photo=%d: gagal hapus blob %s: %v", photo.ID, photo.URL, err)
	}

	res := &DeleteResult{BugReportID: photo.BugReportID}
	err = s.UoW.WithTx(ctx, func(ctx context.Context) error {
		if err := s.Photos.Delete(ctx, photo.ID); err != nil {
			return helper.ErrUpstream(err, "Gagal menghapus foto")
		}
		n, err := s.Photos.CountByReport(ctx, photo.BugReportID)
		if err != nil {
			return helper.ErrUpstream(err, "Gagal menghitung foto")
		}
		flag := reportModel.FotoAda
		if n == 0 {
			flag = reportModel.FotoTidakAda
		}
		if err := s.Reports.SetPhotoFlag(ctx, photo.BugReportID, flag); err != nil {
			return helper.ErrUpstream(err, "Gagal memperbarui status foto laporan")
		}
		res.Remaining, res.FotoStatus = n, flag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
