package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	batchService "coachingku_backend/internals/features/academics/batches/service"
	"coachingku_backend/internals/features/attendance/controller"
	"coachingku_backend/internals/middlewares"
)

// AttendanceAdminRoutes: mutation + export surface (admin|coach group).
func AttendanceAdminRoutes(router fiber.Router, db *gorm.DB, resolver batchService.BatchResolver) {
	ctrl := controller.NewAttendanceController(db, resolver)

	router.Post("/attendance", ctrl.RecordAttendance)
	router.Delete("/attendance", ctrl.RemoveAttendance)
	router.Get("/attendance/export", middlewares.ExportRateLimiter(), ctrl.ExportAttendance)
}

// AttendanceUserRoutes: read surface (any valid session).
func AttendanceUserRoutes(router fiber.Router, db *gorm.DB, resolver batchService.BatchResolver) {
	ctrl := controller.NewAttendanceController(db, resolver)

	router.Get("/attendance", ctrl.ListAttendance)
	router.Get("/attendance/stats", ctrl.GetAttendanceStats)
}
