package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attendance status domain. No transition rules: any status may replace any
// other via a later write.
const (
	StatusPresent       = "present"
	StatusAbsent        = "absent"
	StatusLate          = "late"
	StatusApprovedLeave = "approved_leave"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusApprovedLeave:
		return true
	}
	return false
}

// AttendanceDayModel holds one document per (school, class section, date)
// with a sparse studentID -> status map: only students explicitly marked
// that day appear. Mutations merge individual keys server-side (jsonb ||),
// never read-modify-write, so concurrent writers marking different students
// on the same day cannot lose each other's update.
//
// Rows are hard (no soft delete); removing one student's entry is a jsonb
// key removal, and nothing cascades here from student/class deletion.
type AttendanceDayModel struct {
	AttendanceDayID       uuid.UUID `json:"attendance_day_id" gorm:"type:uuid;primaryKey;column:attendance_day_id;default:gen_random_uuid()"`
	AttendanceDaySchoolID uuid.UUID `json:"attendance_day_school_id" gorm:"type:uuid;not null;column:attendance_day_school_id;uniqueIndex:uq_attendance_day_scope"`

	AttendanceDayClassSectionID uuid.UUID `json:"attendance_day_class_section_id" gorm:"type:uuid;not null;column:attendance_day_class_section_id;uniqueIndex:uq_attendance_day_scope"`
	AttendanceDayDate           time.Time `json:"attendance_day_date" gorm:"type:date;not null;column:attendance_day_date;uniqueIndex:uq_attendance_day_scope"`

	// Weekday name derived from the date in the reference timezone.
	AttendanceDayDay string `json:"attendance_day_day" gorm:"type:text;not null;column:attendance_day_day"`

	AttendanceDayCoachUserID *uuid.UUID `json:"attendance_day_coach_user_id,omitempty" gorm:"type:uuid;column:attendance_day_coach_user_id"`

	// Display-only copy captured at write time; batch membership is always
	// re-derived through the student directory.
	AttendanceDayBatch *string `json:"attendance_day_batch,omitempty" gorm:"type:text;column:attendance_day_batch"`

	AttendanceDayStudents     datatypes.JSONMap `json:"attendance_day_students" gorm:"type:jsonb;not null;default:'{}';column:attendance_day_students"`
	AttendanceDayLeaveReasons datatypes.JSONMap `json:"attendance_day_leave_reasons" gorm:"type:jsonb;not null;default:'{}';column:attendance_day_leave_reasons"`

	AttendanceDayCreatedAt time.Time `json:"attendance_day_created_at" gorm:"column:attendance_day_created_at;autoCreateTime"`
	AttendanceDayUpdatedAt time.Time `json:"attendance_day_updated_at" gorm:"column:attendance_day_updated_at;autoUpdateTime"`
}

func (AttendanceDayModel) TableName() string { return "attendance_days" }

// StatusOf returns the stored status for a student id, if marked that day.
func (m *AttendanceDayModel) StatusOf(studentID string) (string, bool) {
	v, ok := m.AttendanceDayStudents[studentID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ReasonOf returns the leave reason for a student id, when present.
func (m *AttendanceDayModel) ReasonOf(studentID string) (string, bool) {
	v, ok := m.AttendanceDayLeaveReasons[studentID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
