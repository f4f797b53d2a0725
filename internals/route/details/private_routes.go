package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/configs"
	assignRoute "laporbug_backend/internals/features/bugs/bug_assigns/route"
	historyRoute "laporbug_backend/internals/features/bugs/bug_histories/route"
	photoRoute "laporbug_backend/internals/features/bugs/bug_photos/route"
	reportRoute "laporbug_backend/internals/features/bugs/bug_reports/route"
	refRoute "laporbug_backend/internals/features/references/route"
	authRoute "laporbug_backend/internals/features/users/auth/route"
	helperOSS "laporbug_backend/internals/helpers/oss"
	authMiddleware "laporbug_backend/internals/middlewares/auth"
)

// PrivateRoutes → /api/... wajib bearer token
func PrivateRoutes(app *fiber.App, db *gorm.DB, blob helperOSS.BlobService) {
	api := app.Group("/api", authMiddleware.AuthMiddleware(db, configs.JWTSecret))

	authRoute.AuthPrivateRoutes(api, db)
	refRoute.ReferencePrivateRoutes(api, db)

	reportRoute.BugReportRoutes(api, db, blob)
	assignRoute.BugAssignRoutes(api, db)
	historyRoute.BugHistoryRoutes(api, db)
	photoRoute.BugPhotoRoutes(api, db, blob)
}
