package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/class_sections/controller"
)

func ClassSectionUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassSectionController(db)

	router.Get("/class-sections", ctrl.ListClassSections)
}
