package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubjectModel is the subject directory. Subjects are defined per class
// section, so the same subject name can exist independently in several
// sections; the marks aggregation merges them by normalized name when no
// class filter is active.
type SubjectModel struct {
	SubjectID       uuid.UUID `json:"subject_id" gorm:"type:uuid;primaryKey;column:subject_id;default:gen_random_uuid()"`
	SubjectSchoolID uuid.UUID `json:"subject_school_id" gorm:"type:uuid;not null;index;column:subject_school_id"`

	SubjectClassSectionID uuid.UUID `json:"subject_class_section_id" gorm:"type:uuid;not null;index;column:subject_class_section_id"`
	SubjectName           string    `json:"subject_name" gorm:"type:text;not null;column:subject_name"`

	SubjectCreatedAt time.Time      `json:"subject_created_at" gorm:"column:subject_created_at;autoCreateTime"`
	SubjectUpdatedAt time.Time      `json:"subject_updated_at" gorm:"column:subject_updated_at;autoUpdateTime"`
	SubjectDeletedAt gorm.DeletedAt `json:"subject_deleted_at,omitempty" gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }
