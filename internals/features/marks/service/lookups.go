package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "coachingku_backend/internals/features/academics/class_sections/model"
	studentModel "coachingku_backend/internals/features/academics/students/model"
	subjectModel "coachingku_backend/internals/features/academics/subjects/model"
	"coachingku_backend/internals/features/marks/model"
)

// SubjectsInStoredOrder returns the subject directory in its natural scan
// order; the merge-by-name rule picks the first original casing from here.
func SubjectsInStoredOrder(ctx context.Context, db *gorm.DB, schoolID uuid.UUID) ([]SubjectInfo, error) {
	var subjects []subjectModel.SubjectModel
	err := db.WithContext(ctx).
		Select("subject_id, subject_name").
		Where("subject_school_id = ?", schoolID).
		Order("subject_created_at ASC, subject_id ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch subjects")
	}

	out := make([]SubjectInfo, 0, len(subjects))
	for i := range subjects {
		out = append(out, SubjectInfo{
			ID:   subjects[i].SubjectID.String(),
			Name: subjects[i].SubjectName,
		})
	}
	return out, nil
}

// ClassNames maps class section id -> name for the whole school (class
// sub-breakdowns only run in all-classes mode, so no point filtering).
func ClassNames(ctx context.Context, db *gorm.DB, schoolID uuid.UUID) (map[string]string, error) {
	var sections []classModel.ClassSectionModel
	err := db.WithContext(ctx).
		Select("class_section_id, class_section_name").
		Where("class_section_school_id = ?", schoolID).
		Find(&sections).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch class sections")
	}

	names := make(map[string]string, len(sections))
	for i := range sections {
		names[sections[i].ClassSectionID.String()] = sections[i].ClassSectionName
	}
	return names, nil
}

// StudentNamesForDocs maps studentID -> name for the ids appearing in the
// given mark documents.
func StudentNamesForDocs(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, docs []model.MarkTestModel) (map[string]string, error) {
	seen := map[string]struct{}{}
	ids := make([]uuid.UUID, 0)
	for i := range docs {
		for key := range docs[i].Entries() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			if id, err := uuid.Parse(key); err == nil {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	var students []studentModel.StudentModel
	err := db.WithContext(ctx).
		Select("student_id, student_name").
		Where("student_school_id = ? AND student_id IN ?", schoolID, ids).
		Find(&students).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch student names")
	}

	names := make(map[string]string, len(students))
	for i := range students {
		names[students[i].StudentID.String()] = students[i].StudentName
	}
	return names, nil
}
