package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/features/academics/class_sections/model"
	helper "coachingku_backend/internals/helpers"
)

type ClassSectionController struct {
	DB *gorm.DB
}

func NewClassSectionController(db *gorm.DB) *ClassSectionController {
	return &ClassSectionController{DB: db}
}

/* =========================================================
   GET /api/u/class-sections
========================================================= */
func (ctrl *ClassSectionController) ListClassSections(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ClassSectionModel{}).
		Where("class_section_school_id = ?", schoolID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count class sections")
	}

	var sections []model.ClassSectionModel
	if err := q.Order("class_section_name ASC, class_section_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sections).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch class sections")
	}

	return helper.JsonList(c, "ok", sections, helper.BuildPagination(total, paging.Page, paging.PerPage))
}
