package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"laporbug_backend/internals/configs"
	"laporbug_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	if configs.GetEnvBool("HTTP_ACCESS_LOG", true) {
		app.Use(logger.LoggerMiddleware())
	}
	app.Use(GlobalRateLimiter())
}
