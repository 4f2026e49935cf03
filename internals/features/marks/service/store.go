package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	studentModel "coachingku_backend/internals/features/academics/students/model"
	testModel "coachingku_backend/internals/features/academics/tests/model"
	"coachingku_backend/internals/features/marks/model"
)

// LookupTest resolves the mutation target test. Missing test = 404.
func LookupTest(ctx context.Context, db *gorm.DB, schoolID, testID uuid.UUID) (*testModel.TestModel, error) {
	var test testModel.TestModel
	err := db.WithContext(ctx).
		First(&test, "test_id = ? AND test_school_id = ?", testID, schoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "test not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to look up test")
	}
	return &test, nil
}

// ValidateMarkRange enforces 0 <= marks <= maxMarks before any store access.
func ValidateMarkRange(studentID string, marks, maxMarks float64) error {
	if maxMarks <= 0 {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("max_marks must be greater than 0 (student %s)", studentID))
	}
	if marks < 0 || marks > maxMarks {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("marks must be between 0 and %g (student %s)", maxMarks, studentID))
	}
	return nil
}

// SetMarks merge-upserts a single student's entry into the test's mark
// document, leaving every other student's entry untouched.
func SetMarks(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, test *testModel.TestModel, studentID uuid.UUID, marks, maxMarks float64) error {
	if err := ValidateMarkRange(studentID.String(), marks, maxMarks); err != nil {
		return err
	}

	student, err := lookupStudentRow(ctx, db, schoolID, studentID)
	if err != nil {
		return err
	}

	entries := map[string]any{
		studentID.String(): model.MarkEntry{Marks: marks, MaxMarks: maxMarks},
	}
	return upsertEntries(ctx, db, schoolID, test, student.StudentBatch, entries)
}

// SetMarksForTest is the bulk variant: every entry is validated first and
// the complete sub-map is built in memory, then written in one statement.
// One bad entry aborts the whole call before any write. Two concurrent bulk
// calls for the same test merge per key: only overlapping student keys
// collide, and there the later write wins.
func SetMarksForTest(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, test *testModel.TestModel, entries map[uuid.UUID]model.MarkEntry) error {
	if len(entries) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "entries must not be empty")
	}

	payload := make(map[string]any, len(entries))
	var batch *string
	for studentID, entry := range entries {
		if err := ValidateMarkRange(studentID.String(), entry.Marks, entry.MaxMarks); err != nil {
			return err
		}
		student, err := lookupStudentRow(ctx, db, schoolID, studentID)
		if err != nil {
			return err
		}
		if batch == nil {
			batch = student.StudentBatch
		}
		payload[studentID.String()] = entry
	}

	return upsertEntries(ctx, db, schoolID, test, batch, payload)
}

// RemoveMarks drops one student's entry from a test's document.
func RemoveMarks(ctx context.Context, db *gorm.DB, schoolID, testID, studentID uuid.UUID) error {
	res := db.WithContext(ctx).Exec(`
		UPDATE mark_tests
		SET mark_test_students   = mark_test_students - ?,
			mark_test_updated_at = now()
		WHERE mark_test_school_id = ?
		  AND mark_test_test_id = ?
	`, studentID.String(), schoolID, testID)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to remove marks entry")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no mark document for that test")
	}
	return nil
}

// FetchTests queries the registry by the stats/list filters. Nil filters
// are skipped; an empty result is a normal empty aggregation, not an error.
func FetchTests(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, testID, classSectionID, subjectID *uuid.UUID, startDate, endDate *time.Time) ([]testModel.TestModel, error) {
	q := db.WithContext(ctx).
		Model(&testModel.TestModel{}).
		Where("test_school_id = ?", schoolID)

	if testID != nil {
		q = q.Where("test_id = ?", *testID)
	}
	if classSectionID != nil {
		q = q.Where("test_class_section_id = ?", *classSectionID)
	}
	if subjectID != nil {
		q = q.Where("test_subject_id = ?", *subjectID)
	}
	if startDate != nil {
		q = q.Where("test_date >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("test_date <= ?", *endDate)
	}

	var tests []testModel.TestModel
	if err := q.Order("test_date ASC, test_created_at ASC").Find(&tests).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch tests")
	}
	return tests, nil
}

// FetchMarkDocs materializes the mark documents for the given test ids.
func FetchMarkDocs(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, testIDs []uuid.UUID) ([]model.MarkTestModel, error) {
	if len(testIDs) == 0 {
		return []model.MarkTestModel{}, nil
	}

	var docs []model.MarkTestModel
	err := db.WithContext(ctx).
		Where("mark_test_school_id = ? AND mark_test_test_id = ANY(?)", schoolID, pq.Array(testIDs)).
		Find(&docs).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch mark records")
	}
	return docs, nil
}

// Raw statement sets both timestamps explicitly: autoCreateTime and
// autoUpdateTime only apply through the GORM create/update API.
const upsertMarksStmt = `
	INSERT INTO mark_tests (
		mark_test_school_id,
		mark_test_test_id,
		mark_test_class_section_id,
		mark_test_subject_id,
		mark_test_batch,
		mark_test_students,
		mark_test_created_at,
		mark_test_updated_at
	) VALUES (?, ?, ?, ?, ?, ?, now(), now())
	ON CONFLICT (mark_test_school_id, mark_test_test_id)
	DO UPDATE SET
		mark_test_students   = mark_tests.mark_test_students || EXCLUDED.mark_test_students,
		mark_test_batch      = COALESCE(EXCLUDED.mark_test_batch, mark_tests.mark_test_batch),
		mark_test_updated_at = now()`

func upsertEntries(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, test *testModel.TestModel, batch *string, entries map[string]any) error {
	err := db.WithContext(ctx).Exec(upsertMarksStmt,
		schoolID,
		test.TestID,
		test.TestClassSectionID,
		test.TestSubjectID,
		batch,
		jsonb(entries),
	).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record marks")
	}
	return nil
}

func lookupStudentRow(ctx context.Context, db *gorm.DB, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	var student studentModel.StudentModel
	err := db.WithContext(ctx).
		Select("student_id, student_batch").
		First(&student, "student_id = ? AND student_school_id = ?", studentID, schoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound,
				fmt.Sprintf("student %s not found", studentID))
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to look up student")
	}
	return &student, nil
}
