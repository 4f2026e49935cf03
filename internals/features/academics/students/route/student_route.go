package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/students/controller"
)

func StudentUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)

	router.Get("/students", ctrl.ListStudents)
}
