package service

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The raw upsert bypasses GORM's autoCreateTime/autoUpdateTime hooks, so
// the statement itself must initialize both timestamps on insert.
func TestUpsertMarksStmtInitializesTimestamps(t *testing.T) {
	insertList := upsertMarksStmt[:strings.Index(upsertMarksStmt, "VALUES")]

	assert.Contains(t, insertList, "mark_test_created_at")
	assert.Contains(t, insertList, "mark_test_updated_at")
	assert.Contains(t, upsertMarksStmt, "mark_test_updated_at = now()")
}

func TestValidateMarkRange(t *testing.T) {
	tests := []struct {
		name     string
		marks    float64
		maxMarks float64
		wantErr  bool
	}{
		{"zero marks", 0, 100, false},
		{"full marks", 100, 100, false},
		{"in range", 72.5, 100, false},
		{"negative marks", -1, 100, true},
		{"above max", 101, 100, true},
		{"zero max", 50, 0, true},
		{"negative max", 50, -10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarkRange("s1", tt.marks, tt.maxMarks)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, fiber.StatusBadRequest, fe.Code)
		})
	}
}
