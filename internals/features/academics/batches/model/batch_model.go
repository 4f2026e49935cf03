package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchModel is the optional batch registry. Authoritative batch membership
// is always re-derived from the students table; this registry only exists
// so a batch can be listed before any student is assigned to it.
type BatchModel struct {
	BatchID       uuid.UUID `json:"batch_id" gorm:"type:uuid;primaryKey;column:batch_id;default:gen_random_uuid()"`
	BatchSchoolID uuid.UUID `json:"batch_school_id" gorm:"type:uuid;not null;column:batch_school_id;uniqueIndex:uq_batch_school_name"`

	// Stored normalized (see service.NormalizeBatchName).
	BatchName string `json:"batch_name" gorm:"type:text;not null;column:batch_name;uniqueIndex:uq_batch_school_name"`

	BatchCreatedAt time.Time      `json:"batch_created_at" gorm:"column:batch_created_at;autoCreateTime"`
	BatchUpdatedAt time.Time      `json:"batch_updated_at" gorm:"column:batch_updated_at;autoUpdateTime"`
	BatchDeletedAt gorm.DeletedAt `json:"batch_deleted_at,omitempty" gorm:"column:batch_deleted_at;index"`
}

func (BatchModel) TableName() string { return "batches" }
