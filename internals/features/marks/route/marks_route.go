package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchService "coachingku_backend/internals/features/academics/batches/service"
	"coachingku_backend/internals/features/marks/controller"
	"coachingku_backend/internals/middlewares"
)

// MarksAdminRoutes: mutation + export surface (admin|coach group).
func MarksAdminRoutes(router fiber.Router, db *gorm.DB, resolver batchService.BatchResolver) {
	ctrl := controller.NewMarksController(db, resolver)

	router.Post("/marks", ctrl.RecordMarks)
	router.Post("/marks/bulk", ctrl.RecordMarksBulk)
	router.Delete("/marks/:test_id/students/:student_id", ctrl.RemoveMarks)
	router.Get("/marks/export", middlewares.ExportRateLimiter(), ctrl.ExportMarks)
}

// MarksUserRoutes: read surface (any valid session).
func MarksUserRoutes(router fiber.Router, db *gorm.DB, resolver batchService.BatchResolver) {
	ctrl := controller.NewMarksController(db, resolver)

	router.Get("/marks", ctrl.ListMarks)
	router.Get("/marks/stats", ctrl.GetMarksStats)
}
