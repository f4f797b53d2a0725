package access

import (
	"context"
	"errors"

	"gorm.io/gorm"

	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
	assignRepo "laporbug_backend/internals/features/bugs/bug_assigns/repository"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	reportRepo "laporbug_backend/internals/features/bugs/bug_reports/repository"
	refRepo "laporbug_backend/internals/features/references/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

// Loader menyusun ReportScope dari repository.
type Loader struct {
	Reports *reportRepo.ReportRepository
	Assigns *assignRepo.AssignRepository
	Refs    *refRepo.ReferenceRepository
}

func NewLoader(db *gorm.DB) *Loader {
	return &Loader{
		Reports: reportRepo.NewReportRepository(db),
		Assigns: assignRepo.NewAssignRepository(db),
		Refs:    refRepo.NewReferenceRepository(db),
	}
}

// ReportScopeOf membangun scope untuk laporan yang sudah dimuat.
func (l *Loader) ReportScopeOf(ctx context.Context, r *reportModel.BugReportModel) (ReportScope, error) {
	s := ReportScope{ReportID: r.ID, Reporter: r.Reporter()}

	cat, err := l.Refs.FindCategory(ctx, r.CategoryID)
	switch {
	case err == nil:
		s.CategoryValidatorKey = cat.ValidatorNIP
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return s, helper.ErrUpstream(err, "Gagal memuat kategori laporan")
	}

	a, err := l.Assigns.FindByReport(ctx, r.ID)
	if err != nil {
		return s, helper.ErrUpstream(err, "Gagal memuat penugasan laporan")
	}
	if a != nil {
		s.TechnicianKey = a.TeknisiNIP
	}
	return s, nil
}

// LoadReport memuat laporan + scope. 404 kalau laporan tidak ada.
func (l *Loader) LoadReport(ctx context.Context, reportID uint) (*reportModel.BugReportModel, ReportScope, error) {
	r, err := l.Reports.FindByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ReportScope{}, helper.ErrNotFound("Laporan tidak ditemukan")
		}
		return nil, ReportScope{}, helper.ErrUpstream(err, "Gagal memuat laporan")
	}
	s, err := l.ReportScopeOf(ctx, r)
	if err != nil {
		return nil, ReportScope{}, err
	}
	return r, s, nil
}

// Authorize memuat laporan lalu menjalankan predikat; 403 kalau ditolak.
func (l *Loader) Authorize(ctx context.Context, p helperAuth.Principal, reportID uint,
	allow func(helperAuth.Principal, ReportScope) bool, denyMsg string,
) (*reportModel.BugReportModel, ReportScope, error) {
	r, s, err := l.LoadReport(ctx, reportID)
	if err != nil {
		return nil, s, err
	}
	if !allow(p, s) {
		return nil, s, helper.ErrForbidden("%s", denyMsg)
	}
	return r, s, nil
}

func AssignScopeOf(a *assignModel.BugAssignModel) AssignScope {
	return AssignScope{TechnicianKey: a.TeknisiNIP, ValidatorKey: a.ValidatorNIP}
}
