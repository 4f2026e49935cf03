package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentModel is the student directory. Batch and class section are owned
// by the student CRUD collaborator; this service only reads them to resolve
// batch membership, plus it mirrors a non-authoritative "last attendance"
// pair for quick display.
type StudentModel struct {
	StudentID       uuid.UUID `json:"student_id" gorm:"type:uuid;primaryKey;column:student_id;default:gen_random_uuid()"`
	StudentSchoolID uuid.UUID `json:"student_school_id" gorm:"type:uuid;not null;index;column:student_school_id"`

	StudentName  string `json:"student_name" gorm:"type:text;not null;column:student_name"`
	StudentEmail string `json:"student_email" gorm:"type:text;not null;column:student_email"`

	// Batch values are stored already normalized; lookups are exact and
	// case-sensitive. A batch with no students resolves to an empty set.
	StudentBatch          *string    `json:"student_batch,omitempty" gorm:"type:text;index;column:student_batch"`
	StudentClassSectionID *uuid.UUID `json:"student_class_section_id,omitempty" gorm:"type:uuid;index;column:student_class_section_id"`

	// Mirror of the latest attendance write. The attendance_days document
	// is authoritative; this pair exists only so list screens can skip a join.
	StudentLastAttendanceStatus *string    `json:"student_last_attendance_status,omitempty" gorm:"type:text;column:student_last_attendance_status"`
	StudentLastAttendanceDate   *time.Time `json:"student_last_attendance_date,omitempty" gorm:"type:date;column:student_last_attendance_date"`

	StudentCreatedAt time.Time      `json:"student_created_at" gorm:"column:student_created_at;autoCreateTime"`
	StudentUpdatedAt time.Time      `json:"student_updated_at" gorm:"column:student_updated_at;autoUpdateTime"`
	StudentDeletedAt gorm.DeletedAt `json:"student_deleted_at,omitempty" gorm:"column:student_deleted_at;index"`
}

func (StudentModel) TableName() string { return "students" }
