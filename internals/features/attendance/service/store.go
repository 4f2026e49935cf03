package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "coachingku_backend/internals/features/academics/class_sections/model"
	studentModel "coachingku_backend/internals/features/academics/students/model"
	"coachingku_backend/internals/features/attendance/model"
	helper "coachingku_backend/internals/helpers"
)

// LookupStudent resolves the mutation target. A missing student is a 404
// (it is the sole explicit target); a student without a class section is a
// 400, because attendance documents are keyed by class section.
func LookupStudent(ctx context.Context, db *gorm.DB, schoolID, studentID uuid.UUID) (*studentModel.StudentModel, error) {
	var student studentModel.StudentModel
	err := db.WithContext(ctx).
		First(&student, "student_id = ? AND student_school_id = ?", studentID, schoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "student not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to look up student")
	}
	if student.StudentClassSectionID == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "student is not assigned to a class section")
	}
	return &student, nil
}

// Raw statements set both timestamps explicitly: autoCreateTime and
// autoUpdateTime only apply through the GORM create/update API.
const setAttendanceStmt = `
	INSERT INTO attendance_days (
		attendance_day_school_id,
		attendance_day_class_section_id,
		attendance_day_date,
		attendance_day_day,
		attendance_day_coach_user_id,
		attendance_day_batch,
		attendance_day_students,
		attendance_day_leave_reasons,
		attendance_day_created_at,
		attendance_day_updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, now(), now())
	ON CONFLICT (attendance_day_school_id, attendance_day_class_section_id, attendance_day_date)
	DO UPDATE SET
		attendance_day_students      = attendance_days.attendance_day_students || EXCLUDED.attendance_day_students,
		attendance_day_leave_reasons = (attendance_days.attendance_day_leave_reasons - ?) || EXCLUDED.attendance_day_leave_reasons,
		attendance_day_day           = EXCLUDED.attendance_day_day,
		attendance_day_coach_user_id = EXCLUDED.attendance_day_coach_user_id,
		attendance_day_batch         = EXCLUDED.attendance_day_batch,
		attendance_day_updated_at    = now()`

// SetAttendance merge-upserts one student's status into the day document
// keyed by (school, class section, date). The statement only touches the
// students.<id> sub-key (jsonb ||), so other students' entries survive
// concurrent writes. On insert the maps start from the provided entry and
// created_at is initialized.
func SetAttendance(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, student *studentModel.StudentModel, status string, date time.Time, reason string) error {
	if !model.IsValidStatus(status) {
		return fiber.NewError(fiber.StatusBadRequest, "status must be one of present, absent, late, approved_leave")
	}
	if status == model.StatusApprovedLeave && reason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "reason is required when status is approved_leave")
	}

	classSectionID := *student.StudentClassSectionID
	coachUserID := lookupCoach(ctx, db, schoolID, classSectionID)
	studentKey := student.StudentID.String()

	students := map[string]any{studentKey: status}
	reasons := map[string]any{}
	if status == model.StatusApprovedLeave {
		reasons[studentKey] = reason
	}

	// The leave-reasons merge first drops this student's stale key, so a
	// later non-leave status also clears the old reason.
	err := db.WithContext(ctx).Exec(setAttendanceStmt,
		schoolID,
		classSectionID,
		date,
		helper.WeekdayName(date),
		coachUserID,
		student.StudentBatch,
		jsonb(students),
		jsonb(reasons),
		studentKey,
	).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record attendance")
	}

	mirrorLastStatus(ctx, db, student.StudentID, status, date)
	return nil
}

// RemoveAttendance deletes one student's entry for a date; the document
// itself stays (other students' entries are untouched).
func RemoveAttendance(ctx context.Context, db *gorm.DB, schoolID, classSectionID uuid.UUID, studentID uuid.UUID, date time.Time) error {
	studentKey := studentID.String()
	res := db.WithContext(ctx).Exec(`
		UPDATE attendance_days
		SET attendance_day_students      = attendance_day_students - ?,
			attendance_day_leave_reasons = attendance_day_leave_reasons - ?,
			attendance_day_updated_at    = now()
		WHERE attendance_day_school_id = ?
		  AND attendance_day_class_section_id = ?
		  AND attendance_day_date = ?
	`, studentKey, studentKey, schoolID, classSectionID, date)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to remove attendance entry")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no attendance document for that class section and date")
	}
	return nil
}

// FetchDays materializes the matching day documents. classSectionIDs nil
// means "no class filter". Full result sets are folded in memory; there is
// no pagination on this reporting path, which caps out with very large
// tenants (kept as-is from the original design rather than silently fixed).
func FetchDays(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, classSectionIDs []uuid.UUID, startDate, endDate *time.Time) ([]model.AttendanceDayModel, error) {
	q := db.WithContext(ctx).
		Model(&model.AttendanceDayModel{}).
		Where("attendance_day_school_id = ?", schoolID)

	if classSectionIDs != nil {
		if len(classSectionIDs) == 0 {
			return []model.AttendanceDayModel{}, nil
		}
		q = q.Where("attendance_day_class_section_id IN ?", classSectionIDs)
	}
	if startDate != nil {
		q = q.Where("attendance_day_date >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("attendance_day_date <= ?", *endDate)
	}

	var days []model.AttendanceDayModel
	if err := q.Order("attendance_day_date ASC").Find(&days).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch attendance records")
	}
	return days, nil
}

// StudentNames maps studentID -> display name for the ids appearing in the
// given documents.
func StudentNames(ctx context.Context, db *gorm.DB, schoolID uuid.UUID, days []model.AttendanceDayModel) (map[string]string, error) {
	seen := map[string]struct{}{}
	ids := make([]uuid.UUID, 0)
	for i := range days {
		for key := range days[i].AttendanceDayStudents {
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

func lookupCoach(ctx context.Context, db *gorm.DB, schoolID, classSectionID uuid.UUID) *uuid.UUID {
	var section classModel.ClassSectionModel
	err := db.WithContext(ctx).
		Select("class_section_coach_user_id").
		First(&section, "class_section_id = ? AND class_section_school_id = ?", classSectionID, schoolID).Error
	if err != nil {
		return nil
	}
	return section.ClassSectionCoachUserID
}

// mirrorLastStatus keeps the denormalized pair on the student row fresh.
// Best-effort: the day document stays authoritative on failure.
func mirrorLastStatus(ctx context.Context, db *gorm.DB, studentID uuid.UUID, status string, date time.Time) {
	err := db.WithContext(ctx).
		Model(&studentModel.StudentModel{}).
		Where("student_id = ?", studentID).
		Updates(map[string]any{
			"student_last_attendance_status": status,
			"student_last_attendance_date":   date,
		}).Error
	if err != nil {
		log.Printf("[WARN] last attendance mirror failed for student %s: %v", studentID, err)
	}
}
