package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	database "laporbug_backend/internals/databases"
	"laporbug_backend/internals/features/bugs/access"
	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
	assignRepo "laporbug_backend/internals/features/bugs/bug_assigns/repository"
	historyService "laporbug_backend/internals/features/bugs/bug_histories/service"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	reportRepo "laporbug_backend/internals/features/bugs/bug_reports/repository"
	refRepo "laporbug_backend/internals/features/references/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

type AssignService struct {
	UoW     *database.UnitOfWork
	Assigns *assignRepo.AssignRepository
	Reports *reportRepo.ReportRepository
	Refs    *refRepo.ReferenceRepository
	History *historyService.HistoryService
	Loader  *access.Loader
}

func NewAssignService(db *gorm.DB) *AssignService {
	return &AssignService{
		UoW:     database.NewUnitOfWork(db),
		Assigns: assignRepo.NewAssignRepository(db),
		Reports: reportRepo.NewReportRepository(db),
		Refs:    refRepo.NewReferenceRepository(db),
		History: historyService.NewHistoryService(db),
		Loader:  access.NewLoader(db),
	}
}

// ValidationResult: hasil putusan validator beserta laporan setelah cascade.
type ValidationResult struct {
	Assign   *assignModel.BugAssignModel
	Report   *reportModel.BugReportModel
	Cascaded bool
}

/* ===================== CREATE ===================== */

// CreateAssignment adalah satu-satunya jalur pembuatan penugasan.
// Idempoten: kalau laporan sudah punya penugasan, penugasan lama dikembalikan dengan created=false.
func (s *AssignService) CreateAssignment(ctx context.Context, actor helperAuth.Principal, reportID uint, validatorKey, technicianKey string) (*assignModel.BugAssignModel, bool, error) {
	validatorKey = strings.TrimSpace(validatorKey)
	technicianKey = strings.TrimSpace(technicianKey)

	var (
		out     *assignModel.BugAssignModel
		created bool
	)
	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		report, err := s.Reports.FindByID(ctx, reportID)
		if err != nil {
			if helper.IsNotFound(err) {
				return helper.ErrNotFound("Laporan tidak ditemukan")
			}
			return helper.ErrUpstream(err, "Gagal memuat laporan")
		}

		existing, err := s.Assigns.FindByReport(ctx, reportID)
		if err != nil {
			return helper.ErrUpstream(err, "Gagal memeriksa penugasan")
		}

		cat, err := s.Refs.FindCategory(ctx, report.CategoryID)
		if err != nil {
			if helper.IsNotFound(err) {
				return helper.ErrValidation("Kategori laporan tidak ditemukan")
			}
			return helper.ErrUpstream(err, "Gagal memuat kategori")
		}

		if existing != nil {
			// penugasan lama harus tetap milik validator kategori saat ini
			if existing.ValidatorNIP != cat.ValidatorNIP {
				return helper.ErrConflict("Penugasan laporan ini milik validator %s, bukan validator kategori saat ini", existing.ValidatorNIP)
			}
			out = existing
			return nil
		}

		if reportModel.IsTerminal(report.Status) {
			return helper.ErrConflict("Laporan berstatus %s, tidak bisa ditugaskan", report.Status)
		}
		if validatorKey == "" || validatorKey != cat.ValidatorNIP {
			return helper.ErrValidation("Validator %s tidak memegang kategori laporan ini", validatorKey)
		}
		if technicianKey == "" {
			return helper.ErrValidation("nip_teknisi wajib diisi untuk memproses laporan")
		}

		tek, err := s.Refs.FindTeknisiByNIP(ctx, technicianKey)
		if err != nil {
			if helper.IsNotFound(err) {
				return helper.ErrNotFound("Teknisi %s tidak ditemukan", technicianKey)
			}
			return helper.ErrUpstream(err, "Gagal memuat teknisi")
		}
		if tek.ValidatorNIP != validatorKey {
			return helper.ErrValidation("Teknisi %s bukan bawahan validator %s", technicianKey, validatorKey)
		}

		row := &assignModel.BugAssignModel{
			BugReportID:  reportID,
			TeknisiNIP:   technicianKey,
			ValidatorNIP: validatorKey,
			Status:       assignModel.AssignDiproses,
		}
		ok, err := s.Assigns.CreateIfAbsent(ctx, row)
		if err != nil {
			return helper.ErrUpstream(err, "Gagal membuat penugasan")
		}
		if !ok {
			// kalah balapan dengan insert lain: perlakukan sebagai no-op
			existing, err := s.Assigns.FindByReport(ctx, reportID)
			if err != nil || existing == nil {
				return helper.ErrUpstream(errors.Join(err, errors.New("penugasan hilang setelah konflik")), "Gagal memuat penugasan")
			}
			out = existing
			return nil
		}

		note := fmt.Sprintf("Validator %s menugaskan teknisi %s (%s)", validatorKey, tek.Nama, technicianKey)
		if err := s.History.Record(ctx, actor, reportID, reportModel.StatusDiproses, note, map[string]any{
			"event":       "assign",
			"assign_id":   row.ID,
			"nip_teknisi": technicianKey,
		}); err != nil {
			return err
		}

		out, created = row, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		log.Printf("[INFO][BugAssign] report=%d assigned teknisi=%s by=%s", reportID, technicianKey, actor.Key)
	}
	return out, created, nil
}

/* ===================== TEKNISI ===================== */

type TechnicianUpdate struct {
	Status         string
	CatatanTeknisi *string
}

// UpdateByTechnician: status boleh bolak-balik; kembali ke diproses mengosongkan putusan validator.
func (s *AssignService) UpdateByTechnician(ctx context.Context, p helperAuth.Principal, assignID uint, in TechnicianUpdate) (*assignModel.BugAssignModel, error) {
	status := assignModel.NormalizeAssignStatus(in.Status)
	if !assignModel.IsValidAssignStatus(status) {
		return nil, helper.ErrValidation("Status penugasan tidak valid: %q", in.Status)
	}

	var out *assignModel.BugAssignModel
	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.findAssign(ctx, assignID)
		if err != nil {
			return err
		}
		if !access.CanWriteAssignAsTechnician(p, access.AssignScopeOf(a)) {
			return helper.ErrForbidden("Penugasan ini bukan milik Anda")
		}

		fields := map[string]any{"status": status}
		if in.CatatanTeknisi != nil {
			fields["catatan_teknisi"] = strings.TrimSpace(*in.CatatanTeknisi)
		}
		if status == assignModel.AssignDiproses {
			fields["validasi_validator"] = nil
		}
		if err := s.Assigns.Update(ctx, a.ID, fields); err != nil {
			return helper.ErrUpstream(err, "Gagal memperbarui penugasan")
		}

		label := ReportStatusFor(status)
		meta := map[string]any{"event": "teknisi_update", "assign_id": a.ID, "status": status}
		if in.CatatanTeknisi != nil {
			meta["catatan_teknisi"] = strings.TrimSpace(*in.CatatanTeknisi)
		}
		if err := s.History.Record(ctx, p, a.BugReportID, label, reportModel.StatusMessage(label, p.Role), meta); err != nil {
			return err
		}

		out, err = s.findAssign(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ===================== VALIDATOR ===================== */

// ValidateByValidator menyimpan putusan; "disetujui" menimpa status laporan dengan status penugasan.
func (s *AssignService) ValidateByValidator(ctx context.Context, p helperAuth.Principal, assignID uint, verdictRaw string) (*ValidationResult, error) {
	verdict, ok := assignModel.NormalizeVerdict(verdictRaw)
	if !ok {
		return nil, helper.ErrValidation("validasi_validator harus 'disetujui' atau 'tidak disetujui'")
	}

	res := &ValidationResult{}
	err := s.UoW.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.findAssign(ctx, assignID)
		if err != nil {
			return err
		}
		if !access.CanValidateAssign(p, access.AssignScopeOf(a)) {
			return helper.ErrForbidden("Penugasan ini bukan milik validator Anda")
		}
		if a.Status == assignModel.AssignDiproses {
			return helper.ErrValidation("Teknisi belum menandai pekerjaan selesai")
		}

		if err := s.Assigns.Update(ctx, a.ID, map[string]any{"validasi_validator": verdict}); err != nil {
			return helper.ErrUpstream(err, "Gagal menyimpan validasi")
		}

		label := reportModel.LabelTidakDisetujui
		if verdict == assignModel.VerdictDisetujui {
			label = reportModel.LabelDisetujui
		}
		if err := s.History.Record(ctx, p, a.BugReportID, label, reportModel.StatusMessage(label, p.Role), map[string]any{
			"event":     "validasi",
			"assign_id": a.ID,
			"verdict":   verdict,
		}); err != nil {
			return err
		}

		report, err := s.Reports.FindByID(ctx, a.BugReportID)
		if err != nil {
			if helper.IsNotFound(err) {
				return helper.ErrNotFound("Laporan tidak ditemukan")
			}
			return helper.ErrUpstream(err, "Gagal memuat laporan")
		}

		if verdict == assignModel.VerdictDisetujui {
			target := ReportStatusFor(a.Status)
			from := report.Status
			if err := s.Reports.UpdateStatus(ctx, report.ID, target); err != nil {
				return helper.ErrUpstream(err, "Gagal memperbarui status laporan")
			}
			note := fmt.Sprintf("Status laporan mengikuti hasil perbaikan yang disetujui: %s", target)
			if err := s.History.Record(ctx, p, report.ID, target, note, map[string]any{
				"event":     "cascade",
				"assign_id": a.ID,
				"from":      from,
				"to":        target,
			}); err != nil {
				return err
			}
			report.Status = target
			res.Cascaded = true
		}

		res.Report = report
		res.Assign, err = s.findAssign(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO][BugAssign] assign=%d verdict=%q cascaded=%v", assignID, verdict, res.Cascaded)
	return res, nil
}

/* ===================== READ ===================== */

func (s *AssignService) Get(ctx context.Context, p helperAuth.Principal, assignID uint) (*assignModel.BugAssignModel, error) {
	a, err := s.findAssign(ctx, assignID)
	if err != nil {
		return nil, err
	}
	if !access.CanReadAssign(p, access.AssignScopeOf(a)) {
		return nil, helper.ErrForbidden("Anda tidak memiliki akses ke penugasan ini")
	}
	return a, nil
}

type ListQuery struct {
	Status      string
	BugReportID uint
	Limit       int
	Offset      int
}

// List: teknisi & validator hanya melihat penugasan miliknya, admin melihat semua.
func (s *AssignService) List(ctx context.Context, p helperAuth.Principal, q ListQuery) ([]assignModel.BugAssignModel, int64, error) {
	f := assignRepo.ListFilter{
		Status:      assignModel.NormalizeAssignStatus(q.Status),
		BugReportID: q.BugReportID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	switch {
	case p.Is(constants.RoleTeknisi):
		f.TeknisiNIP = p.Key
	case p.Is(constants.RoleValidator):
		f.ValidatorNIP = p.Key
	case p.Is(constants.AdminRoles...):
	default:
		return nil, 0, helper.ErrForbidden("%s", constants.RoleErrorReviewer("penugasan"))
	}
	rows, total, err := s.Assigns.List(ctx, f)
	if err != nil {
		return nil, 0, helper.ErrUpstream(err, "Gagal mengambil daftar penugasan")
	}
	return rows, total, nil
}

// FindByReport: penugasan milik laporan (akses mengikuti hak baca laporan).
func (s *AssignService) FindByReport(ctx context.Context, p helperAuth.Principal, reportID uint) (*assignModel.BugAssignModel, error) {
	if _, _, err := s.Loader.Authorize(ctx, p, reportID, access.CanReadReportExtended,
		"Anda tidak memiliki akses ke laporan ini"); err != nil {
		return nil, err
	}
	a, err := s.Assigns.FindByReport(ctx, reportID)
	if err != nil {
		return nil, helper.ErrUpstream(err, "Gagal memuat penugasan")
	}
	if a == nil {
		return nil, helper.ErrNotFound("Laporan belum memiliki penugasan")
	}
	return a, nil
}

func (s *AssignService) findAssign(ctx context.Context, id uint) (*assignModel.BugAssignModel, error) {
	a, err := s.Assigns.FindByID(ctx, id)
	if err != nil {
		if helper.IsNotFound(err) {
			return nil, helper.ErrNotFound("Penugasan tidak ditemukan")
		}
		return nil, helper.ErrUpstream(err, "Gagal memuat penugasan")
	}
	return a, nil
}
