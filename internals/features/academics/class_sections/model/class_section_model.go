package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassSectionModel is the class directory this service reads; the owning
// CRUD lives in another service. Only the coach assignment matters here
// (write-permission checks).
type ClassSectionModel struct {
	ClassSectionID       uuid.UUID `json:"class_section_id" gorm:"type:uuid;primaryKey;column:class_section_id;default:gen_random_uuid()"`
	ClassSectionSchoolID uuid.UUID `json:"class_section_school_id" gorm:"type:uuid;not null;index;column:class_section_school_id"`

	ClassSectionName        string     `json:"class_section_name" gorm:"type:text;not null;column:class_section_name"`
	ClassSectionCoachUserID *uuid.UUID `json:"class_section_coach_user_id,omitempty" gorm:"type:uuid;column:class_section_coach_user_id"`

	ClassSectionCreatedAt time.Time      `json:"class_section_created_at" gorm:"column:class_section_created_at;autoCreateTime"`
	ClassSectionUpdatedAt time.Time      `json:"class_section_updated_at" gorm:"column:class_section_updated_at;autoUpdateTime"`
	ClassSectionDeletedAt gorm.DeletedAt `json:"class_section_deleted_at,omitempty" gorm:"column:class_section_deleted_at;index"`
}

func (ClassSectionModel) TableName() string { return "class_sections" }
