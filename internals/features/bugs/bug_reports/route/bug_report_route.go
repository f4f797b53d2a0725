package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/features/bugs/bug_reports/controller"
	"laporbug_backend/internals/features/bugs/bug_reports/service"
	helperOSS "laporbug_backend/internals/helpers/oss"
	authMiddleware "laporbug_backend/internals/middlewares/auth"
)

func BugReportRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewBugReportController(service.NewReportService(db, blob))

	g := r.Group("/bug-report")
	g.Post("/",
		authMiddleware.OnlyRoles(constants.RoleErrorReporter("membuat laporan"), constants.ReporterRoles...),
		ctrl.Create,
	)
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorReviewer("mengubah laporan"), constants.ReviewerRoles...),
		ctrl.Update,
	)
	g.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorSuperAdmin("menghapus laporan"), constants.SuperAdminOnly...),
		ctrl.Delete,
	)
}
