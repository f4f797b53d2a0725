package access

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/databases/dbtest"
	reportModel "laporbug_backend/internals/features/bugs/bug_reports/model"
	reportRepo "laporbug_backend/internals/features/bugs/bug_reports/repository"
)

func TestAuthorizeKeepsDenyMessageVerbatim(t *testing.T) {
	db := dbtest.OpenWithReferences(t)
	ctx := context.Background()

	r := &reportModel.BugReportModel{
		CategoryID: dbtest.CategoryV1,
		Deskripsi:  "formulir 100% gagal dikirim",
		Status:     reportModel.StatusDiajukan,
		FotoStatus: reportModel.FotoTidakAda,
	}
	r.SetReporter(reportModel.CitizenReporter(nikOwner))
	if err := reportRepo.NewReportRepository(db).Create(ctx, r); err != nil {
		t.Fatalf("create report: %v", err)
	}

	l := NewLoader(db)
	const msg = "Akses ditolak 100%s tanpa format %d"
	_, _, err := l.Authorize(ctx, principal(constants.RoleWarga, "3273019999999999"), r.ID, CanReadReport, msg)

	var fe *fiber.Error
	if !errors.As(err, &fe) || fe.Code != fiber.StatusForbidden {
		t.Fatalf("err = %v, want 403", err)
	}
	if fe.Message != msg {
		t.Fatalf("message = %q, want %q", fe.Message, msg)
	}

	got, s, err := l.Authorize(ctx, principal(constants.RoleWarga, nikOwner), r.ID, CanReadReport, msg)
	if err != nil || got.ID != r.ID || s.CategoryValidatorKey != dbtest.ValidatorV1 {
		t.Fatalf("owner Authorize() = %+v %+v err=%v", got, s, err)
	}

	_, _, err = l.Authorize(ctx, principal(constants.RoleWarga, nikOwner), 9999, CanReadReport, msg)
	if !errors.As(err, &fe) || fe.Code != fiber.StatusNotFound {
		t.Fatalf("missing report err = %v, want 404", err)
	}
}
