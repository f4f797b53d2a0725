package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/features/bugs/bug_assigns/dto"
	"laporbug_backend/internals/features/bugs/bug_assigns/service"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

type BugAssignController struct {
	Service   *service.AssignService
	Validator *validator.Validate
}

func NewBugAssignController(svc *service.AssignService) *BugAssignController {
	return &BugAssignController{Service: svc, Validator: validator.New()}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, helper.ErrValidation("%s tidak valid", name)
	}
	return uint(id), nil
}

// =========================
// POST /api/bug-assign
// =========================
func (ac *BugAssignController) Create(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.CreateBugAssignRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validator.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	row, created, err := ac.Service.CreateAssignment(c.UserContext(), p, body.BugReportID, p.Key, body.NIPTeknisi)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if !created {
		return helper.JsonOK(c, "Laporan sudah memiliki penugasan", dto.ToBugAssignResponse(row))
	}
	return helper.JsonCreated(c, "Penugasan berhasil dibuat", dto.ToBugAssignResponse(row))
}

// =========================
// GET /api/bug-assign
// =========================
func (ac *BugAssignController) List(c *fiber.Ctx) error {
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
	if v := c.QueryInt("id_bug_report", 0); v > 0 {
		q.BugReportID = uint(v)
	}

	rows, total, err := ac.Service.List(c.UserContext(), p, q)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	pagination := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "Daftar penugasan", dto.ToBugAssignResponses(rows), &pagination)
}

// =========================
// GET /api/bug-assign/:id
// =========================
func (ac *BugAssignController) Get(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ac.Service.Get(c.UserContext(), p, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail penugasan", dto.ToBugAssignResponse(row))
}

// =========================
// GET /api/bug-assign/report/:id_bug_report
// =========================
func (ac *BugAssignController) GetByReport(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := paramID(c, "id_bug_report")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	row, err := ac.Service.FindByReport(c.UserContext(), p, id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Penugasan laporan", dto.ToBugAssignResponse(row))
}

// =========================
// PUT /api/bug-assign/:id (teknisi)
// =========================
func (ac *BugAssignController) UpdateByTechnician(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.UpdateBugAssignRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validator.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := ac.Service.UpdateByTechnician(c.UserContext(), p, id, service.TechnicianUpdate{
		Status:         body.Status,
		CatatanTeknisi: body.CatatanTeknisi,
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Status penugasan diperbarui", dto.ToBugAssignResponse(row))
}

// =========================
// PUT /api/bug-assign/:id/validasi (validator)
// =========================
func (ac *BugAssignController) Validate(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var body dto.ValidateBugAssignRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ac.Validator.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	res, err := ac.Service.ValidateByValidator(c.UserContext(), p, id, body.ValidasiValidator)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Validasi tersimpan", fiber.Map{
		"assign":        dto.ToBugAssignResponse(res.Assign),
		"status_report": res.Report.Status,
		"cascaded":      res.Cascaded,
	})
}
