package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/batches/controller"
)

func BatchUserRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := controller.NewBatchController(db)

	router.Get("/batches", ctrl.ListBatches)
}
