package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/subjects/model"
	helper "coachingku_backend/internals/helpers"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

/* =========================================================
   GET /api/u/subjects?class_section_id=
========================================================= */
func (ctrl *SubjectController) ListSubjects(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SubjectModel{}).
		Where("subject_school_id = ?", schoolID)

	if s := strings.TrimSpace(c.Query("class_section_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_section_id is not a valid UUID")
		}
		q = q.Where("subject_class_section_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count subjects")
	}

	// Stored order matters: in the all-classes view subjects sharing a name
	// are merged and the first stored casing wins as the display name.
	var subjects []model.SubjectModel
	if err := q.Order("subject_created_at ASC, subject_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch subjects")
	}

	return helper.JsonList(c, "ok", subjects, helper.BuildPagination(total, paging.Page, paging.PerPage))
}
