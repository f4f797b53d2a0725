package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	refRoute "laporbug_backend/internals/features/references/route"
	authRoute "laporbug_backend/internals/features/users/auth/route"
)

// PublicRoutes → /api/... tanpa token
func PublicRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	authRoute.AuthPublicRoutes(api, db)
	refRoute.ReferencePublicRoutes(api, db)
}
