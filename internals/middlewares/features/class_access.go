package features

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "coachingku_backend/internals/features/academics/class_sections/model"
	helper "coachingku_backend/internals/helpers"
)

// EnsureCanManageClassSection enforces the write rule: admins (and owners)
// may touch any class section in their school, coaches only the section they
// are assigned to. Called by controllers after validation, before any store
// write.
func EnsureCanManageClassSection(c *fiber.Ctx, db *gorm.DB, schoolID, classSectionID uuid.UUID) error {
	if helper.IsAdmin(c) {
		return nil
	}
	if !helper.IsCoach(c) {
		return fiber.NewError(fiber.StatusForbidden, "only admins or coaches may modify attendance and marks")
	}

	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var section classModel.ClassSectionModel
	err = db.WithContext(c.UserContext()).
		Select("class_section_id, class_section_coach_user_id").
		First(&section,
			"class_section_id = ? AND class_section_school_id = ?",
			classSectionID, schoolID,
		).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "class section not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to check class section")
	}

	if section.ClassSectionCoachUserID == nil || *section.ClassSectionCoachUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "you are not the coach assigned to this class section")
	}
	return nil
}
