package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/tests/controller"
)

func TestAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(db)

	router.Post("/tests", ctrl.CreateTest)
}

func TestUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTestController(db)

	router.Get("/tests", ctrl.ListTests)
}
