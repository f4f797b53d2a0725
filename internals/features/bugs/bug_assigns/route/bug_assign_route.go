package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/features/bugs/bug_assigns/controller"
	"laporbug_backend/internals/features/bugs/bug_assigns/service"
	authMiddleware "laporbug_backend/internals/middlewares/auth"
)

func BugAssignRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBugAssignController(service.NewAssignService(db))

	g := r.Group("/bug-assign")
	g.Get("/",
		authMiddleware.OnlyRoles(constants.RoleErrorReviewer("penugasan"), constants.AssignReaderRoles...),
		ctrl.List,
	)
	g.Get("/report/:id_bug_report", ctrl.GetByReport)
	g.Get("/:id", ctrl.Get)
	g.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorValidator("membuat penugasan"), constants.ValidatorOnly...),
		ctrl.Create,
	)
	g.Put("/:id/validasi",
		authMiddleware.OnlyRoles(constants.RoleErrorValidator("validasi penugasan"), constants.ValidatorOnly...),
		ctrl.Validate,
	)
	g.Put("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorTeknisi("memperbarui penugasan"), constants.TeknisiOnly...),
		ctrl.UpdateByTechnician,
	)
}
