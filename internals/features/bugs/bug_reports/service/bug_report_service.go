package service

import (
	"context"
	"log"
	"strings"

	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	database "laporbug_backend/internals/databases"
	"laporbug_backend/internals/features/bugs/access"
	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
	assignRepo "laporbug_backend/internals/features/bugs/bug_assigns/repository"
	assignService "laporbug_backend/internals/features/bugs/bug_assigns/service"
	historyService "laporbug_backend/internals/features/bugs/bug_histories/service"
	photoRepo "laporbug_backend/internals/features/bugs/bug_photos/repository"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	reportRepo "laporbug_backend/internals/features/bugs/bug_reports/repository"
	refRepo "laporbug_backend/internals/features/references/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
	helperOSS "laporbug_backend/internals/helpers/oss"
)

// AssignmentCreator: jalur pembuatan penugasan yang dipanggil saat laporan diproses.
type AssignmentCreator interface {
	CreateAssignment(ctx context.Context, actor helperAuth.Principal, reportID uint, validatorKey, technicianKey string) (*assignModel.BugAssignModel, bool, error)
}

type ReportService struct {
	UoW      *database.UnitOfWork
	Reports  *reportRepo.ReportRepository
	Refs     *refRepo.ReferenceRepository
	Assigns  *assignRepo.AssignRepository
	Photos   *photoRepo.PhotoRepository
	History  *historyService.HistoryService
	Loader   *access.Loader
	Assigner AssignmentCreator
	Blob     helperOSS.BlobService
}

func NewReportService(db *gorm.DB, blob helperOSS.BlobService) *ReportService {
	return &ReportService{
		UoW:      database.NewUnitOfWork(db),
		Reports:  reportRepo.NewReportRepository(db),
		Refs:     refRepo.NewReferenceRepository(db),
		Assigns:  assignRepo.NewAssignRepository(db),
		Photos:   photoRepo.NewPhotoRepository(db),
		History:  historyService.NewHistoryService(db),
		Loader:   access.NewLoader(db),
		Assigner: assignService.NewAssignService(db),
		Blob:     blob,
	}
}

/* ===================== SUBMIT ===================== */

type SubmitInput struct {
	CategoryID uint
	Deskripsi  string
}

// Submit membuat laporan baru (status diajukan, belum ada foto) + riwayat "dibuat".
func (s *ReportService) Submit(ctx context.Context, p helperAuth.Principal, in SubmitInput) (*reportModel.BugReportModel, error) {
	reporter, ok := reportModel.ReporterFor(p.Role, p.Key)
	if !ok {
		return nil, helper.ErrForbidden("%s", constants.RoleErrorReporter("membuat laporan"))
	}
	desc := strings.TrimSpace(in.Deskripsi)
	if in.CategoryID == 0 {
		return nil, helper.ErrValidation("id_bug_category wajib diisi")
	}
	if desc == "" {
		return nil, helper.ErrValidation("deskripsi wajib diisi")
	}

	row := &reportModel.BugReportModel{
		CategoryID: in.CategoryID,
		Deskripsi:  desc,
		Status:     reportModel.StatusDiajukan,
		FotoStatus: reportModel.FotoTidakAda,
	}
	row.SetReporter(reporter)

	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.Refs.FindCategory(ctx, in.CategoryID); err != nil {
			if helper.IsNotFound(err) {
				return helper.ErrValidation("Kategori %d tidak ditemukan", in.CategoryID)
			}
			return helper.ErrUpstream(err, "Gagal memuat kategori")
		}
		if err := s.Reports.Create(ctx, row); err != nil {
			return helper.ErrUpstream(err, "Gagal menyimpan laporan")
		}
		return s.History.Record(ctx, p, row.ID, reportModel.LabelDibuat,
			reportModel.StatusMessage(reportModel.LabelDibuat, p.Role),
			map[string]any{"event": "submit", "id_bug_category": in.CategoryID})
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO][BugReport] submitted id=%d by %s/%s", row.ID, p.Role, p.Key)
	return row, nil
}

/* ===================== TRANSITION ===================== */

type TransitionInput struct {
	Status        string  // kosong = tetap di status sekarang (hanya catatan)
	Note          *string // catatan_admin
	TechnicianKey string  // wajib saat masuk diproses tanpa penugasan
}

type TransitionResult struct {
	Report        *reportModel.BugReportModel
	Assign        *assignModel.BugAssignModel
	AssignCreated bool
}

// Transition: validator kategori / super_admin mengubah status laporan.
// Masuk diproses memanggil CreateAssignment di transaksi yang sama; gagal = tidak ada yang tersimpan.
func (s *ReportService) Transition(ctx context.Context, p helperAuth.Principal, reportID uint, in TransitionInput) (*TransitionResult, error) {
	status := strings.TrimSpace(in.Status)
	if p.Is(constants.RoleAdminKategori) && status != "" {
		return nil, helper.ErrForbidden("Admin kategori hanya boleh menambahkan catatan revisi, bukan mengubah status")
	}
	if !p.Is(constants.RoleValidator, constants.RoleSuperAdmin) {
		return nil, helper.ErrForbidden("%s", constants.RoleErrorReviewer("mengubah status laporan"))
	}
	if status != "" && !reportModel.IsValidStatus(status) {
		return nil, helper.ErrValidation("Status laporan tidak valid: %q", status)
	}

	res := &TransitionResult{}
	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		report, scope, err := s.Loader.Authorize(ctx, p, reportID, access.CanTransitionReport,
			"Laporan ini bukan kategori yang Anda tangani")
		if err != nil {
			return err
		}

		from := report.Status
		target := status
		if target == "" {
			target = from
		}

		switch reportModel.CheckTransition(from, target, p.Role) {
		case reportModel.TransitionTerminal:
			return helper.ErrConflict("Laporan sudah %s; hanya super admin yang dapat membuka kembali", from)
		case reportModel.TransitionInvalid:
			return helper.ErrConflict("Transisi status %s → %s tidak diizinkan", from, target)
		}

		fields := map[string]any{}
		if target != from {
			fields["status"] = target
		}
		if in.Note != nil {
			fields["catatan_admin"] = strings.TrimSpace(*in.Note)
		}
		if len(fields) > 0 {
			if err := s.Reports.Update(ctx, report.ID, fields); err != nil {
				return helper.ErrUpstream(err, "Gagal memperbarui laporan")
			}
			meta := map[string]any{"event": "transition", "from": from, "to": target}
			if in.Note != nil {
				meta["catatan_admin"] = strings.TrimSpace(*in.Note)
			}
			if err := s.History.Record(ctx, p, report.ID, target, reportModel.StatusMessage(target, p.Role), meta); err != nil {
				return err
			}
		}

		if target == reportModel.StatusDiproses {
			a, created, err := s.Assigner.CreateAssignment(ctx, p, report.ID, scope.CategoryValidatorKey, in.TechnicianKey)
			if err != nil {
				return err
			}
			res.Assign, res.AssignCreated = a, created
		}

		res.Report, err = s.Reports.FindByID(ctx, report.ID)
		if err != nil {
			return helper.ErrUpstream(err, "Gagal memuat laporan")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO][BugReport] transition id=%d → %s by %s/%s", reportID, res.Report.Status, p.Role, p.Key)
	return res, nil
}

/* ===================== REVISE ===================== */

type ReviseInput struct {
	Note       *string
	CategoryID *uint
}

// Revise: admin kategori / super_admin menyimpan catatan revisi dan/atau koreksi kategori.
func (s *ReportService) Revise(ctx context.Context, p helperAuth.Principal, reportID uint, in ReviseInput) (*reportModel.BugReportModel, error) {
	if !access.CanReviseReport(p) {
		return nil, helper.ErrForbidden("Hanya admin kategori atau super admin yang boleh merevisi laporan")
	}
	if in.Note == nil && in.CategoryID == nil {
		return nil, helper.ErrValidation("catatan_admin atau id_bug_category wajib diisi")
	}

	var out *reportModel.BugReportModel
	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		report, _, err := s.Loader.LoadReport(ctx, reportID)
		if err != nil {
			return err
		}

		fields := map[string]any{}
		meta := map[string]any{"event": "revise"}
		if in.Note != nil {
			fields["catatan_admin"] = strings.TrimSpace(*in.Note)
			meta["catatan_admin"] = strings.TrimSpace(*in.Note)
		}
		if in.CategoryID != nil && *in.CategoryID != report.CategoryID {
			// penugasan terikat ke validator kategori lama
			existing, err := s.Assigns.FindByReport(ctx, report.ID)
			if err != nil {
				return helper.ErrUpstream(err, "Gagal memeriksa penugasan")
			}
			if existing != nil {
				return helper.ErrConflict("Laporan sudah ditugaskan oleh validator %s, kategori tidak bisa diubah", existing.ValidatorNIP)
			}
			if _, err := s.Refs.FindCategory(ctx, *in.CategoryID); err != nil {
				if helper.IsNotFound(err) {
					return helper.ErrValidation("Kategori %d tidak ditemukan", *in.CategoryID)
				}
				return helper.ErrUpstream(err, "Gagal memuat kategori")
			}
			fields["id_bug_category"] = *in.CategoryID
			meta["from_category"] = report.CategoryID
			meta["to_category"] = *in.CategoryID
		}
		if len(fields) > 0 {
			if err := s.Reports.Update(ctx, report.ID, fields); err != nil {
				return helper.ErrUpstream(err, "Gagal merevisi laporan")
			}
		}
		if err := s.History.Record(ctx, p, report.ID, report.Status,
			reportModel.StatusMessage(reportModel.StatusRevisiByAdmin, p.Role), meta); err != nil {
			return err
		}

		out, err = s.Reports.FindByID(ctx, report.ID)
		if err != nil {
			return helper.ErrUpstream(err, "Gagal memuat laporan")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ===================== READ ===================== */

func (s *ReportService) Get(ctx context.Context, p helperAuth.Principal, reportID uint) (*reportModel.BugReportModel, error) {
	r, _, err := s.Loader.Authorize(ctx, p, reportID, access.CanReadReportExtended,
		"Anda tidak memiliki akses ke laporan ini")
	return r, err
}

type ListQuery struct {
	Status     string
	CategoryID uint
	Limit      int
	Offset     int
}

// List mengikuti scope role: pelapor → miliknya, validator → kategorinya, teknisi → yang ditugaskan, admin → semua.
func (s *ReportService) List(ctx context.Context, p helperAuth.Principal, q ListQuery) ([]reportModel.BugReportModel, int64, error) {
	if q.Status != "" && !reportModel.IsValidStatus(q.Status) {
		return nil, 0, helper.ErrValidation("Filter status tidak valid: %q", q.Status)
	}
	f := reportRepo.ListFilter{
		Status:     q.Status,
		CategoryID: q.CategoryID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}

	switch p.Role {
	case constants.RoleSuperAdmin, constants.RoleAdminKategori:
	case constants.RoleWarga, constants.RolePencatat:
		reporter, _ := reportModel.ReporterFor(p.Role, p.Key)
		f.ReporterKind, f.ReporterKey = string(reporter.Kind), reporter.Key
	case constants.RoleValidator:
		ids, err := s.Refs.CategoryIDsByValidator(ctx, p.Key)
		if err != nil {
			return nil, 0, helper.ErrUpstream(err, "Gagal memuat kategori validator")
		}
		f.RestrictCats, f.CategoryIDs = true, ids
	case constants.RoleTeknisi:
		ids, err := s.Assigns.ReportIDsByTeknisi(ctx, p.Key)
		if err != nil {
			return nil, 0, helper.ErrUpstream(err, "Gagal memuat penugasan teknisi")
		}
		f.RestrictIDs, f.ReportIDs = true, ids
	default:
		return nil, 0, helper.ErrForbidden("Role tidak dikenal")
	}

	rows, total, err := s.Reports.List(ctx, f)
	if err != nil {
		return nil, 0, helper.ErrUpstream(err, "Gagal mengambil daftar laporan")
	}
	return rows, total, nil
}

/* ===================== PURGE ===================== */

// Purge menghapus laporan beserta foto & penugasannya. Riwayat tetap disimpan.
// Blob dihapus setelah commit, best-effort.
func (s *ReportService) Purge(ctx context.Context, p helperAuth.Principal, reportID uint) error {
	if !p.Is(constants.RoleSuperAdmin) {
		return helper.ErrForbidden("%s", constants.RoleErrorSuperAdmin("menghapus laporan"))
	}

	var urls []string
	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		report, _, err := s.Loader.LoadReport(ctx, reportID)
		if err != nil {
			return err
		}
		photos, err := s.Photos.ListByReport(ctx, report.ID)
		if err != nil {
			return helper.ErrUpstream(err, "Gagal memuat foto laporan")
		}
		for _, ph := range photos {
			urls = append(urls, ph.URL)
		}
		if err := s.Photos.DeleteByReport(ctx, report.ID); err != nil {
			return helper.ErrUpstream(err, "Gagal menghapus foto laporan")
		}
		if err := s.Assigns.DeleteByReport(ctx, report.ID); err != nil {
			return helper.ErrUpstream(err, "Gagal menghapus penugasan laporan")
		}
		if err := s.Reports.Delete(ctx, report.ID); err != nil {
			return helper.ErrUpstream(err, "Gagal menghapus laporan")
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, u := range urls {
		if s.Blob == nil {
			break
		}
		if err := s.Blob.DeleteByPublicURL(ctx, u); err != nil {
			log.Printf("[WARN][BugReport] purge id=%d: gagal hapus blob %s: %v", reportID, u, err)
		}
	}
	log.Printf("[INFO][BugReport] purged id=%d photos=%d by %s", reportID, len(urls), p.Key)
	return nil
}
