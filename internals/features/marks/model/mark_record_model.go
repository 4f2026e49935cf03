package model

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MarkEntry is one student's score inside a mark document.
// 0 <= Marks <= MaxMarks is enforced at write time, never assumed.
type MarkEntry struct {
	Marks    float64 `json:"marks"`
	MaxMarks float64 `json:"max_marks"`
}

// MarkTestModel holds one document per test with a sparse
// studentID -> {marks, max_marks} map, whatever the student count.
// Single-student mutations merge one key server-side; the bulk path builds
// the whole provided sub-map in memory and writes it in one statement
// (all-or-nothing at the call boundary). Concurrent bulk calls for the same
// test merge per key: only overlapping student keys collide, and there the
// later write wins.
type MarkTestModel struct {
	MarkTestID       uuid.UUID `json:"mark_test_id" gorm:"type:uuid;primaryKey;column:mark_test_id;default:gen_random_uuid()"`
	MarkTestSchoolID uuid.UUID `json:"mark_test_school_id" gorm:"type:uuid;not null;column:mark_test_school_id;uniqueIndex:uq_mark_test_scope"`

	// References the tests registry; one fact document per test.
	MarkTestTestID uuid.UUID `json:"mark_test_test_id" gorm:"type:uuid;not null;column:mark_test_test_id;uniqueIndex:uq_mark_test_scope"`

	MarkTestClassSectionID uuid.UUID `json:"mark_test_class_section_id" gorm:"type:uuid;not null;index;column:mark_test_class_section_id"`
	MarkTestSubjectID      uuid.UUID `json:"mark_test_subject_id" gorm:"type:uuid;not null;index;column:mark_test_subject_id"`

	// Display-only copy captured at write time; never used for filtering.
	MarkTestBatch *string `json:"mark_test_batch,omitempty" gorm:"type:text;column:mark_test_batch"`

	MarkTestStudents datatypes.JSON `json:"mark_test_students" gorm:"type:jsonb;not null;default:'{}';column:mark_test_students"`

	MarkTestCreatedAt time.Time `json:"mark_test_created_at" gorm:"column:mark_test_created_at;autoCreateTime"`
	MarkTestUpdatedAt time.Time `json:"mark_test_updated_at" gorm:"column:mark_test_updated_at;autoUpdateTime"`
}

func (MarkTestModel) TableName() string { return "mark_tests" }

// Entries decodes the sparse student map. Unparseable documents decode to
// an empty map rather than failing a whole aggregation.
func (m *MarkTestModel) Entries() map[string]MarkEntry {
	out := map[string]MarkEntry{}
	if len(m.MarkTestStudents) == 0 {
		return out
	}
	_ = sonic.Unmarshal(m.MarkTestStudents, &out)
	return out
}
