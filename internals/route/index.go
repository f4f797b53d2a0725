// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helperOSS "laporbug_backend/internals/helpers/oss"
	routeDetails "laporbug_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, blob helperOSS.BlobService) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// PUBLIC harus didaftarkan sebelum group ber-JWT (prefix sama: /api)
	log.Println("[INFO] Setting up PUBLIC routes...")
	routeDetails.PublicRoutes(app, db)

	log.Println("[INFO] Setting up PRIVATE routes (JWT)...")
	routeDetails.PrivateRoutes(app, db, blob)
}
