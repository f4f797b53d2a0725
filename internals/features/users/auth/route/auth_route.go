// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/configs"
	"laporbug_backend/internals/features/users/auth/controller"
	"laporbug_backend/internals/features/users/auth/service"
	middlewares "laporbug_backend/internals/middlewares"
)

// AuthPublicRoutes → /api/auth (tanpa token)
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(service.NewAuthService(db, configs.JWTSecret, configs.JWTTTL))

	g := r.Group("/auth")
	g.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	g.Post("/logout", ctrl.Logout)
}

// AuthPrivateRoutes → /api/auth (dengan token)
func AuthPrivateRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(service.NewAuthService(db, configs.JWTSecret, configs.JWTTTL))

	g := r.Group("/auth")
	g.Get("/me", ctrl.Me)
	g.Post("/change-password", ctrl.ChangePassword)
}
