package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/configs"
	"laporbug_backend/internals/constants"
	"laporbug_backend/internals/features/bugs/bug_photos/controller"
	"laporbug_backend/internals/features/bugs/bug_photos/service"
	helperOSS "laporbug_backend/internals/helpers/oss"
	middlewares "laporbug_backend/internals/middlewares"
	authMiddleware "laporbug_backend/internals/middlewares/auth"
)

func BugPhotoRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := controller.NewBugPhotoController(service.NewPhotoService(db, blob, configs.BugPhotoMaxSize))
	onlyReporter := authMiddleware.OnlyRoles(constants.RoleErrorReporter("foto laporan"), constants.ReporterRoles...)

	g := r.Group("/bug-photos")
	g.Delete("/photo/:id", onlyReporter, ctrl.Delete)
	g.Get("/:id_bug_report", ctrl.List)
	g.Post("/:id_bug_report", middlewares.UploadRateLimiter(), onlyReporter, ctrl.Upload)
}
