package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/databases/dbtest"
	assignModel "laporbug_backend/internals/features/bugs/bug_assigns/model"
	historyRepo "laporbug_backend/internals/features/bugs/bug_histories/repository"
	photoModel "laporbug_backend/internals/features/bugs/bug_photos/model"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
	helperOSS "laporbug_backend/internals/helpers/oss"
)

var (
	warga      = helperAuth.Principal{AccountID: 11, Role: constants.RoleWarga, Key: "3273010101900001"}
	wargaLain  = helperAuth.Principal{AccountID: 12, Role: constants.RoleWarga, Key: "3273010101900002"}
	validator1 = helperAuth.Principal{AccountID: 21, Role: constants.RoleValidator, Key: dbtest.ValidatorV1}
	validator2 = helperAuth.Principal{AccountID: 22, Role: constants.RoleValidator, Key: dbtest.ValidatorV2}
	teknisi1   = helperAuth.Principal{AccountID: 31, Role: constants.RoleTeknisi, Key: dbtest.TeknisiT1}
	adminKat   = helperAuth.Principal{AccountID: 41, Role: constants.RoleAdminKategori, Key: "adminkategori"}
	superAdmin = helperAuth.Principal{AccountID: 1, Role: constants.RoleSuperAdmin, Key: "superadmin"}
)

type fixture struct {
	svc     *ReportService
	history *historyRepo.HistoryRepository
	blob    *helperOSS.MemoryBlobService
}

func setupReportService(t *testing.T) fixture {
	t.Helper()
	db := dbtest.OpenWithReferences(t)
	blob := helperOSS.NewMemoryBlobService("memory://test")
	return fixture{
		svc:     NewReportService(db, blob),
		history: historyRepo.NewHistoryRepository(db),
		blob:    blob,
	}
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	if got := helper.StatusOf(err); got != code {
		t.Fatalf("status = %d (err=%v), want %d", got, err, code)
	}
}

func (f fixture) historyCount(t *testing.T, reportID uint) int64 {
	t.Helper()
	n, err := f.history.Count(context.Background(), reportID)
	if err != nil {
		t.Fatalf("count history: %v", err)
	}
	return n
}

func (f fixture) submit(t *testing.T, p helperAuth.Principal, category uint) *reportModel.BugReportModel {
	t.Helper()
	r, err := f.svc.Submit(context.Background(), p, SubmitInput{CategoryID: category, Deskripsi: "login fails"})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	return r
}

func TestSubmitCreatesReportWithHistory(t *testing.T) {
	f := setupReportService(t)
	r := f.submit(t, warga, dbtest.CategoryV1)

	if r.Status != reportModel.StatusDiajukan {
		t.Fatalf("status = %q", r.Status)
	}
	if r.FotoStatus != reportModel.FotoTidakAda {
		t.Fatalf("foto_status = %q", r.FotoStatus)
	}
	if r.Reporter() != reportModel.CitizenReporter(warga.Key) {
		t.Fatalf("reporter = %+v", r.Reporter())
	}

	rows, err := f.history.Timeline(context.Background(), r.ID)
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Status != reportModel.LabelDibuat {
		t.Fatalf("timeline = %+v", rows)
	}
	if rows[0].Keterangan != "Laporan dibuat oleh warga" {
		t.Fatalf("keterangan = %q", rows[0].Keterangan)
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, warga, SubmitInput{CategoryID: 99, Deskripsi: "x"})
	requireStatus(t, err, fiber.StatusBadRequest)

	_, err = f.svc.Submit(ctx, warga, SubmitInput{CategoryID: dbtest.CategoryV1, Deskripsi: "   "})
	requireStatus(t, err, fiber.StatusBadRequest)

	_, err = f.svc.Submit(ctx, warga, SubmitInput{Deskripsi: "tanpa kategori"})
	requireStatus(t, err, fiber.StatusBadRequest)

	if _, err := f.svc.Submit(ctx, warga, SubmitInput{CategoryID: dbtest.CategoryV1, Deskripsi: "ok"}); err != nil {
		t.Fatalf("short description rejected: %v", err)
	}

	_, err = f.svc.Submit(ctx, teknisi1, SubmitInput{CategoryID: dbtest.CategoryV1, Deskripsi: "x"})
	requireStatus(t, err, fiber.StatusForbidden)
}

func TestTransitionToDiprosesCreatesAssignment(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	res, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	})
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if res.Report.Status != reportModel.StatusDiproses {
		t.Fatalf("report status = %q", res.Report.Status)
	}
	if !res.AssignCreated || res.Assign == nil {
		t.Fatalf("assignment not created: %+v", res)
	}
	if res.Assign.Status != assignModel.AssignDiproses || res.Assign.TeknisiNIP != dbtest.TeknisiT1 || res.Assign.ValidatorNIP != dbtest.ValidatorV1 {
		t.Fatalf("assign = %+v", res.Assign)
	}
	// dibuat + transisi + penugasan
	if n := f.historyCount(t, r.ID); n != 3 {
		t.Fatalf("history rows = %d, want 3", n)
	}

	// diproses lagi: tidak ada penugasan baru, tidak ada riwayat baru
	again, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	})
	if err != nil {
		t.Fatalf("second Transition() error = %v", err)
	}
	if again.AssignCreated || again.Assign.ID != res.Assign.ID {
		t.Fatalf("expected existing assignment, got %+v", again)
	}
	if n := f.historyCount(t, r.ID); n != 3 {
		t.Fatalf("history rows after no-op = %d, want 3", n)
	}
}

func TestTransitionWithForeignTechnicianRollsBack(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	_, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT2,
	})
	requireStatus(t, err, fiber.StatusBadRequest)

	got, err := f.svc.Reports.FindByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Status != reportModel.StatusDiajukan {
		t.Fatalf("status changed to %q", got.Status)
	}
	a, err := f.svc.Assigns.FindByReport(ctx, r.ID)
	if err != nil || a != nil {
		t.Fatalf("assignment = %+v, err = %v", a, err)
	}
	if n := f.historyCount(t, r.ID); n != 1 {
		t.Fatalf("history rows = %d, want 1", n)
	}
}

func TestTransitionRequiresTechnician(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	_, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{Status: reportModel.StatusDiproses})
	requireStatus(t, err, fiber.StatusBadRequest)

	_, err = f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: "000000000000000000",
	})
	requireStatus(t, err, fiber.StatusNotFound)

	if n := f.historyCount(t, r.ID); n != 1 {
		t.Fatalf("history rows = %d, want 1", n)
	}
}

func TestTransitionAuthorization(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	_, err := f.svc.Transition(ctx, validator2, r.ID, TransitionInput{Status: reportModel.StatusRevisiByAdmin})
	requireStatus(t, err, fiber.StatusForbidden)

	_, err = f.svc.Transition(ctx, adminKat, r.ID, TransitionInput{Status: reportModel.StatusSelesai})
	requireStatus(t, err, fiber.StatusForbidden)

	_, err = f.svc.Transition(ctx, warga, r.ID, TransitionInput{Status: reportModel.StatusSelesai})
	requireStatus(t, err, fiber.StatusForbidden)

	_, err = f.svc.Transition(ctx, validator1, 9999, TransitionInput{Status: reportModel.StatusSelesai})
	requireStatus(t, err, fiber.StatusNotFound)

	_, err = f.svc.Transition(ctx, validator1, r.ID, TransitionInput{Status: "ditutup"})
	requireStatus(t, err, fiber.StatusBadRequest)
}

func TestTerminalReportOnlyReopenedBySuperAdmin(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	if _, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{Status: reportModel.StatusSelesai}); err != nil {
		t.Fatalf("Transition(selesai) error = %v", err)
	}

	_, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{Status: reportModel.StatusRevisiByAdmin})
	requireStatus(t, err, fiber.StatusConflict)

	res, err := f.svc.Transition(ctx, superAdmin, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if res.Report.Status != reportModel.StatusDiproses || !res.AssignCreated {
		t.Fatalf("reopen result = %+v", res)
	}
}

func TestTransitionNoteOnlyKeepsStatus(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	note := "  mohon lampirkan tangkapan layar  "
	res, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{Note: &note})
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if res.Report.Status != reportModel.StatusDiajukan {
		t.Fatalf("status = %q", res.Report.Status)
	}
	if res.Report.CatatanAdmin == nil || *res.Report.CatatanAdmin != "mohon lampirkan tangkapan layar" {
		t.Fatalf("catatan_admin = %v", res.Report.CatatanAdmin)
	}
	if n := f.historyCount(t, r.ID); n != 2 {
		t.Fatalf("history rows = %d, want 2", n)
	}
}

func TestReviseByCategoryAdmin(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	note := "kategori salah, dipindah"
	cat := dbtest.CategoryV2
	got, err := f.svc.Revise(ctx, adminKat, r.ID, ReviseInput{Note: &note, CategoryID: &cat})
	if err != nil {
		t.Fatalf("Revise() error = %v", err)
	}
	if got.CategoryID != dbtest.CategoryV2 || got.Status != reportModel.StatusDiajukan {
		t.Fatalf("revised = %+v", got)
	}

	// validator lama kehilangan akses, validator baru mendapatkannya
	if _, err := f.svc.Get(ctx, validator1, r.ID); helper.StatusOf(err) != fiber.StatusForbidden {
		t.Fatalf("old validator err = %v", err)
	}
	if _, err := f.svc.Get(ctx, validator2, r.ID); err != nil {
		t.Fatalf("new validator err = %v", err)
	}

	bad := uint(77)
	_, err = f.svc.Revise(ctx, adminKat, r.ID, ReviseInput{CategoryID: &bad})
	requireStatus(t, err, fiber.StatusBadRequest)

	_, err = f.svc.Revise(ctx, validator1, r.ID, ReviseInput{Note: &note})
	requireStatus(t, err, fiber.StatusForbidden)
}

func TestReviseCategoryRejectedOnceAssigned(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	if _, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	before := f.historyCount(t, r.ID)

	cat := dbtest.CategoryV2
	_, err := f.svc.Revise(ctx, adminKat, r.ID, ReviseInput{CategoryID: &cat})
	requireStatus(t, err, fiber.StatusConflict)

	got, err := f.svc.Reports.FindByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.CategoryID != dbtest.CategoryV1 {
		t.Fatalf("category = %d, want unchanged", got.CategoryID)
	}
	if n := f.historyCount(t, r.ID); n != before {
		t.Fatalf("history rows = %d, want %d", n, before)
	}

	// catatan saja tetap boleh
	note := "sedang dikerjakan"
	if _, err := f.svc.Revise(ctx, adminKat, r.ID, ReviseInput{Note: &note}); err != nil {
		t.Fatalf("Revise(note) error = %v", err)
	}
}

func TestStaleAssignmentIsNotReused(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	if _, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	// kategori dipindah di luar Revise (mis. koreksi data langsung)
	if err := f.svc.Reports.Update(ctx, r.ID, map[string]any{
		"id_bug_category": dbtest.CategoryV2,
		"status":          reportModel.StatusRevisiByAdmin,
	}); err != nil {
		t.Fatalf("update report: %v", err)
	}

	_, err := f.svc.Transition(ctx, validator2, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT2,
	})
	requireStatus(t, err, fiber.StatusConflict)

	got, err := f.svc.Reports.FindByID(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Status != reportModel.StatusRevisiByAdmin {
		t.Fatalf("status = %q, want rollback to revisi_by_admin", got.Status)
	}
}

func TestListScopedByRole(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	mine := f.submit(t, warga, dbtest.CategoryV1)
	f.submit(t, wargaLain, dbtest.CategoryV2)

	rows, total, err := f.svc.List(ctx, warga, ListQuery{})
	if err != nil || total != 1 || rows[0].ID != mine.ID {
		t.Fatalf("warga list = %+v total=%d err=%v", rows, total, err)
	}

	rows, total, err = f.svc.List(ctx, validator2, ListQuery{})
	if err != nil || total != 1 || rows[0].CategoryID != dbtest.CategoryV2 {
		t.Fatalf("validator list = %+v total=%d err=%v", rows, total, err)
	}

	_, total, err = f.svc.List(ctx, teknisi1, ListQuery{})
	if err != nil || total != 0 {
		t.Fatalf("teknisi list before assignment total=%d err=%v", total, err)
	}
	if _, err := f.svc.Transition(ctx, validator1, mine.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	rows, total, err = f.svc.List(ctx, teknisi1, ListQuery{})
	if err != nil || total != 1 || rows[0].ID != mine.ID {
		t.Fatalf("teknisi list = %+v total=%d err=%v", rows, total, err)
	}
	if _, err := f.svc.Get(ctx, teknisi1, mine.ID); err != nil {
		t.Fatalf("teknisi get err = %v", err)
	}

	_, total, err = f.svc.List(ctx, superAdmin, ListQuery{Status: reportModel.StatusDiajukan})
	if err != nil || total != 1 {
		t.Fatalf("admin filtered list total=%d err=%v", total, err)
	}

	_, _, err = f.svc.List(ctx, superAdmin, ListQuery{Status: "ngawur"})
	requireStatus(t, err, fiber.StatusBadRequest)
}

func TestPurgeKeepsHistory(t *testing.T) {
	f := setupReportService(t)
	ctx := context.Background()
	r := f.submit(t, warga, dbtest.CategoryV1)

	if _, err := f.svc.Transition(ctx, validator1, r.ID, TransitionInput{
		Status:        reportModel.StatusDiproses,
		TechnicianKey: dbtest.TeknisiT1,
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	url, err := f.blob.Put(ctx, "report", pngStub, "bukti.png", "image/png")
	if err != nil {
		t.Fatalf("blob put: %v", err)
	}
	if err := f.svc.Photos.Create(ctx, &photoModel.BugPhotoModel{BugReportID: r.ID, URL: url, NamaFile: "bukti.png", Posisi: 1}); err != nil {
		t.Fatalf("create photo: %v", err)
	}

	requireStatus(t, f.svc.Purge(ctx, validator1, r.ID), fiber.StatusForbidden)

	if err := f.svc.Purge(ctx, superAdmin, r.ID); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if _, err := f.svc.Reports.FindByID(ctx, r.ID); !helper.IsNotFound(err) {
		t.Fatalf("report still present: %v", err)
	}
	if n, _ := f.svc.Photos.CountByReport(ctx, r.ID); n != 0 {
		t.Fatalf("photos left = %d", n)
	}
	if a, _ := f.svc.Assigns.FindByReport(ctx, r.ID); a != nil {
		t.Fatalf("assignment left = %+v", a)
	}
	if f.blob.Len() != 0 {
		t.Fatalf("blobs left = %d", f.blob.Len())
	}
	if n := f.historyCount(t, r.ID); n != 3 {
		t.Fatalf("history rows = %d, want 3", n)
	}

	requireStatus(t, f.svc.Purge(ctx, superAdmin, r.ID), fiber.StatusNotFound)
}

var pngStub = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
