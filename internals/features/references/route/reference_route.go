package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/features/references/controller"
	authMiddleware "laporbug_backend/internals/middlewares/auth"
)

func ReferencePublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReferenceController(db)
	r.Get("/bug-categories", ctrl.ListCategories)
}

func ReferencePrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReferenceController(db)
	r.Get("/teknisi",
		authMiddleware.OnlyRoles(constants.RoleErrorValidator("melihat daftar teknisi"), constants.ValidatorOnly...),
		ctrl.ListMyTeknisi,
	)
}
