package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/features/references/dto"
	"laporbug_backend/internals/features/references/repository"
	helper "laporbug_backend/internals/helpers"
	helperAuth "laporbug_backend/internals/helpers/auth"
)

type ReferenceController struct {
	Repo *repository.ReferenceRepository
}

func NewReferenceController(db *gorm.DB) *ReferenceController {
	return &ReferenceController{Repo: repository.NewReferenceRepository(db)}
}

// GET /api/bug-categories
func (rc *ReferenceController) ListCategories(c *fiber.Ctx) error {
	rows, err := rc.Repo.ListCategories(c.UserContext())
	if err != nil {
		return helper.FromFiberError(c, helper.ErrUpstream(err, "Gagal mengambil kategori"))
	}
	return helper.JsonOK(c, "Daftar kategori", dto.ToCategoryResponses(rows))
}

// GET /api/teknisi (validator: teknisi miliknya sendiri)
func (rc *ReferenceController) ListMyTeknisi(c *fiber.Ctx) error {
	p, err := helperAuth.GetPrincipal(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, err := rc.Repo.ListTeknisiByValidator(c.UserContext(), p.Key)
	if err != nil {
		return helper.FromFiberError(c, helper.ErrUpstream(err, "Gagal mengambil teknisi"))
	}
	return helper.JsonOK(c, "Daftar teknisi", dto.ToTeknisiResponses(rows))
}
