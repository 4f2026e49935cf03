package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BatchResolver expands a normalized batch name into concrete id sets.
// Attendance and mark facts carry no batch index of their own, so every
// batch-scoped read resolves through the student directory first. An
// unknown batch resolves to empty sets, never an error.
type BatchResolver interface {
	ClassSectionIDsForBatch(ctx context.Context, schoolID uuid.UUID, batch string) ([]uuid.UUID, error)
	StudentIDsForBatch(ctx context.Context, schoolID uuid.UUID, batch string) ([]uuid.UUID, error)
}

type dbResolver struct {
	db *gorm.DB
}

func NewBatchResolver(db *gorm.DB) BatchResolver {
	return &dbResolver{db: db}
}

func (r *dbResolver) StudentIDsForBatch(ctx context.Context, schoolID uuid.UUID, batch string) ([]uuid.UUID, error) {
	name := NormalizeBatchName(batch)
	if name == "" {
		return []uuid.UUID{}, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("students").
		Where("student_school_id = ? AND student_batch = ? AND student_deleted_at IS NULL", schoolID, name).
		Pluck("student_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *dbResolver) ClassSectionIDsForBatch(ctx context.Context, schoolID uuid.UUID, batch string) ([]uuid.UUID, error) {
	name := NormalizeBatchName(batch)
	if name == "" {
		return []uuid.UUID{}, nil
	}

	// DISTINCT because many students of one batch share a class section;
	// NULL class sections are skipped (student not yet placed).
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("students").
		Distinct("student_class_section_id").
		Where(`student_school_id = ?
			AND student_batch = ?
			AND student_class_section_id IS NOT NULL
			AND student_deleted_at IS NULL`, schoolID, name).
		Pluck("student_class_section_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
