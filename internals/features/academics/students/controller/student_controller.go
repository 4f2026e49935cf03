package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	batchService "coachingku_backend/internals/features/academics/batches/service"
	"coachingku_backend/internals/features/academics/students/model"
	helper "coachingku_backend/internals/helpers"
)

// StudentController is the read-only surface over the student directory;
// the owning CRUD lives in another service.
type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* =========================================================
   GET /api/u/students?batch=&class_section_id=
========================================================= */
func (ctrl *StudentController) ListStudents(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.StudentModel{}).
		Where("student_school_id = ?", schoolID)

	if batch := strings.TrimSpace(c.Query("batch")); batch != "" {
		q = q.Where("student_batch = ?", batchService.NormalizeBatchName(batch))
	}
	if s := strings.TrimSpace(c.Query("class_section_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_section_id is not a valid UUID")
		}
		q = q.Where("student_class_section_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count students")
	}

	var students []model.StudentModel
	if err := q.Order("student_name ASC, student_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch students")
	}

	return helper.JsonList(c, "ok", students, helper.BuildPagination(total, paging.Page, paging.PerPage))
}
