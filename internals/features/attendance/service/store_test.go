package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The raw upsert bypasses GORM's autoCreateTime/autoUpdateTime hooks, so
// the statement itself must initialize both timestamps on insert.
func TestSetAttendanceStmtInitializesTimestamps(t *testing.T) {
	insertList := setAttendanceStmt[:strings.Index(setAttendanceStmt, "VALUES")]

	assert.Contains(t, insertList, "attendance_day_created_at")
	assert.Contains(t, insertList, "attendance_day_updated_at")
	assert.Contains(t, setAttendanceStmt, "attendance_day_updated_at    = now()")
}
