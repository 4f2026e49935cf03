package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/subjects/controller"
)

func SubjectUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubjectController(db)

	router.Get("/subjects", ctrl.ListSubjects)
}
