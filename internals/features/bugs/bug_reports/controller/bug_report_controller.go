package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/constants"
	assignDTO "laporbug_backend/internals/features/bugs/bug_assigns/dto"
	"laporbug_backend/internals/features/bugs/bug_reports/dto"
	"laporbug_backend/internals/features/bugs/bug_reports/service"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

type BugReportController struct {
	Service   *service.ReportService
	Validator *validator.Validate
}

func NewBugReportController(svc *service.ReportService) *BugReportController {
	return &BugReportController{Service: svc, Validator: validator.New()}
}

func reportIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, helper.ErrValidation("id laporan tidak valid")
	}
	return uint(id), nil
}

// =========================
// POST /api/bug-report
// =========================
func (rc *BugReportController) Create(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.CreateBugReportRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := rc.Validator.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := rc.Service.Submit(c.UserContext(), p, service.SubmitInput{
		CategoryID: body.CategoryID,
		Deskripsi:  body.Deskripsi,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Laporan berhasil dibuat", dto.ToBugReportResponse(row))
}

// =========================
// GET /api/bug-report
// =========================
func (rc *BugReportController) List(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pg := helper.ResolvePaging(c, 20, 100)
	q := service.ListQuery{
		Status: c.Query("status"),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}
	if v := c.QueryInt("id_bug_category", 0); v > 0 {
		q.CategoryID = uint(v)
	}

	rows, total, err := rc.Service.List(c.UserContext(), p, q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "Daftar laporan", dto.ToBugReportResponses(rows), &pagination)
}

// =========================
// GET /api/bug-report/:id
// =========================
func (rc *BugReportController) Get(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := reportIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := rc.Service.Get(c.UserContext(), p, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail laporan", dto.ToBugReportResponse(row))
}

// =========================
// PUT /api/bug-report/:id
// =========================
// Admin kategori (atau super admin tanpa status) → revisi; validator / super admin → transisi status.
func (rc *BugReportController) Update(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := reportIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.UpdateBugReportRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := rc.Validator.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	revise := body.Status == "" && (p.Is(constants.RoleAdminKategori) ||
		(p.Is(constants.RoleSuperAdmin) && body.CategoryID != nil))
	if revise {
		row, err := rc.Service.Revise(c.UserContext(), p, id, service.ReviseInput{
			Note:       body.CatatanAdmin,
			CategoryID: body.CategoryID,
		})
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.JsonUpdated(c, "Catatan revisi tersimpan", dto.TransitionResponse{
			Report: dto.ToBugReportResponse(row),
		})
	}

	res, err := rc.Service.Transition(c.UserContext(), p, id, service.TransitionInput{
		Status:        body.Status,
		Note:          body.CatatanAdmin,
		TechnicianKey: body.NIPTeknisi,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	out := dto.TransitionResponse{
		Report:        dto.ToBugReportResponse(res.Report),
		AssignCreated: res.AssignCreated,
	}
	if res.Assign != nil {
		a := assignDTO.ToBugAssignResponse(res.Assign)
		out.Assign = &a
	}
	return helper.JsonUpdated(c, "Status laporan diperbarui", out)
}

// =========================
// DELETE /api/bug-report/:id
// =========================
func (rc *BugReportController) Delete(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := reportIDParam(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := rc.Service.Purge(c.UserContext(), p, id); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Laporan berhasil dihapus", fiber.Map{"id": id})
}
