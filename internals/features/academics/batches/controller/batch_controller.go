package controller

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "coachingku_backend/internals/helpers"
)

type BatchController struct {
	DB *gorm.DB
}

func NewBatchController(db *gorm.DB) *BatchController {
	return &BatchController{DB: db}
}

/* =========================================================
   GET /api/u/batches
========================================================= */
// ListBatches returns the union of the batch registry and the distinct
// batch values actually assigned to students. Registered-but-empty batches
// still show up; ad-hoc batch values typed straight onto students do too.
func (ctrl *BatchController) ListBatches(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	db := ctrl.DB.WithContext(c.UserContext())

	var registered []string
	if err := db.Table("batches").
		Where("batch_school_id = ? AND batch_deleted_at IS NULL", schoolID).
		Pluck("batch_name", &registered).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch batches")
	}

	var assigned []string
	if err := db.Table("students").
		Where("student_school_id = ? AND student_deleted_at IS NULL AND student_batch IS NOT NULL AND student_batch <> ''", schoolID).
		Distinct().
		Pluck("student_batch", &assigned).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch batches")
	}

	seen := make(map[string]struct{}, len(registered)+len(assigned))
	names := make([]string, 0, len(registered)+len(assigned))
	for _, name := range append(registered, assigned...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	return helper.JsonOK(c, "ok", fiber.Map{"batches": names})
}
