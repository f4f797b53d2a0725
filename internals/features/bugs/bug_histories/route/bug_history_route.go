package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"laporbug_backend/internals/features/bugs/bug_histories/controller"
	"laporbug_backend/internals/features/bugs/bug_histories/service"
)

func BugHistoryRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBugHistoryController(service.NewHistoryService(db))

	g := r.Group("/bug-history")
	g.Get("/:id_bug_report", ctrl.Timeline)
}
