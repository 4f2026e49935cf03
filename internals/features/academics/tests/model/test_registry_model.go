package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TestModel is the test registry: metadata only. The per-student marks for
// a test live in the mark_tests fact document keyed by this id.
type TestModel struct {
	TestID       uuid.UUID `json:"test_id" gorm:"type:uuid;primaryKey;column:test_id;default:gen_random_uuid()"`
	TestSchoolID uuid.UUID `json:"test_school_id" gorm:"type:uuid;not null;index;column:test_school_id"`

	TestClassSectionID uuid.UUID `json:"test_class_section_id" gorm:"type:uuid;not null;index;column:test_class_section_id"`
	TestSubjectID      uuid.UUID `json:"test_subject_id" gorm:"type:uuid;not null;index;column:test_subject_id"`

	TestName     string    `json:"test_name" gorm:"type:text;not null;column:test_name"`
	TestDate     time.Time `json:"test_date" gorm:"type:date;not null;index;column:test_date"`
	TestMaxMarks float64   `json:"test_max_marks" gorm:"not null;default:100;column:test_max_marks"`

	TestCreatedAt time.Time      `json:"test_created_at" gorm:"column:test_created_at;autoCreateTime"`
	TestUpdatedAt time.Time      `json:"test_updated_at" gorm:"column:test_updated_at;autoUpdateTime"`
	TestDeletedAt gorm.DeletedAt `json:"test_deleted_at,omitempty" gorm:"column:test_deleted_at;index"`
}

func (TestModel) TableName() string { return "tests" }
