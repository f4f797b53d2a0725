package controller

import (
	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/features/bugs/bug_histories/dto"
	"laporbug_backend/internals/features/bugs/bug_histories/service"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

type BugHistoryController struct {
	Service *service.HistoryService
}

func NewBugHistoryController(svc *service.HistoryService) *BugHistoryController {
	return &BugHistoryController{Service: svc}
}

// GET /api/bug-history/:id_bug_report
func (hc *BugHistoryController) Timeline(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	reportID, err := c.ParamsInt("id_bug_report")
	if err != nil || reportID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "id_bug_report tidak valid")
	}

	rows, err := hc.Service.Timeline(c.UserContext(), p, uint(reportID))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Riwayat laporan", dto.ToBugHistoryResponses(rows))
}
