package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"coachingku_backend/internals/features/attendance/model"
)

func day(t *testing.T, date string, students map[string]any, reasons map[string]any) model.AttendanceDayModel {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	if reasons == nil {
		reasons = map[string]any{}
	}
	return model.AttendanceDayModel{
		AttendanceDayID:             uuid.New(),
		AttendanceDaySchoolID:       uuid.New(),
		AttendanceDayClassSectionID: uuid.New(),
		AttendanceDayDate:           d,
		AttendanceDayDay:            d.Weekday().String(),
		AttendanceDayStudents:       datatypes.JSONMap(students),
		AttendanceDayLeaveReasons:   datatypes.JSONMap(reasons),
	}
}

func TestBuildStatsPercentageHalfWeightsLate(t *testing.T) {
	// 8 present + 1 late + 1 absent over 10 counted days:
	// (8 + 0.5) / 10 * 100 = 85.00
	days := make([]model.AttendanceDayModel, 0, 10)
	for i := 0; i < 8; i++ {
		days = append(days, day(t, time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			map[string]any{"s1": model.StatusPresent}, nil))
	}
	days = append(days, day(t, "2024-01-09", map[string]any{"s1": model.StatusLate}, nil))
	days = append(days, day(t, "2024-01-10", map[string]any{"s1": model.StatusAbsent}, nil))

	out := BuildStats(days, StatsOptions{})
	require.Len(t, out.StudentStats, 1)

	stat := out.StudentStats[0]
	assert.Equal(t, 8, stat.Present)
	assert.Equal(t, 1, stat.Late)
	assert.Equal(t, 1, stat.Absent)
	assert.Equal(t, 10, stat.Total)
	assert.Equal(t, 85.0, stat.AttendancePercentage)
}

func TestBuildStatsExcludesApprovedLeaveEverywhere(t *testing.T) {
	days := []model.AttendanceDayModel{
		day(t, "2024-01-10", map[string]any{
			"s1": model.StatusPresent,
			"s2": model.StatusApprovedLeave,
		}, map[string]any{"s2": "family event"}),
		day(t, "2024-01-11", map[string]any{
			"s1": model.StatusApprovedLeave,
			"s2": model.StatusApprovedLeave,
		}, map[string]any{"s1": "sick", "s2": "sick"}),
	}

	out := BuildStats(days, StatsOptions{})

	// Chart buckets count only present/absent/late; the 01-11 document
	// carries nothing countable, so there is at most an empty bucket.
	for _, p := range out.ChartData {
		assert.Equal(t, 0, p.Absent)
		assert.Equal(t, 0, p.Late)
	}

	require.Len(t, out.StudentStats, 2)
	byID := map[string]int{}
	for i, s := range out.StudentStats {
		byID[s.StudentID] = i
	}

	s1 := out.StudentStats[byID["s1"]]
	assert.Equal(t, 1, s1.Total)
	assert.Equal(t, 100.0, s1.AttendancePercentage)

	// Approved leave all period: total 0, percentage 0, never NaN.
	s2 := out.StudentStats[byID["s2"]]
	assert.Equal(t, 0, s2.Total)
	assert.Equal(t, 0.0, s2.AttendancePercentage)

	assert.Equal(t, 1, out.Stats.TotalPresent)
	assert.Equal(t, 0, out.Stats.TotalAbsent)
	assert.Equal(t, 0, out.Stats.TotalLate)
	assert.Equal(t, 2, out.Stats.TotalStudents)
}

func TestBuildStatsStudentFilter(t *testing.T) {
	days := []model.AttendanceDayModel{
		day(t, "2024-01-10", map[string]any{
			"s1": model.StatusPresent,
			"s2": model.StatusAbsent,
			"s3": model.StatusLate,
		}, nil),
	}

	out := BuildStats(days, StatsOptions{
		StudentFilter: map[string]struct{}{"s1": {}, "s3": {}},
	})

	require.Len(t, out.StudentStats, 2)
	require.Len(t, out.ChartData, 1)
	assert.Equal(t, 1, out.ChartData[0].Present)
	assert.Equal(t, 0, out.ChartData[0].Absent)
	assert.Equal(t, 1, out.ChartData[0].Late)
}

func TestBuildStatsOnlyStudent(t *testing.T) {
	days := []model.AttendanceDayModel{
		day(t, "2024-01-10", map[string]any{"s1": model.StatusPresent, "s2": model.StatusPresent}, nil),
		day(t, "2024-01-11", map[string]any{"s2": model.StatusAbsent}, nil),
	}

	out := BuildStats(days, StatsOptions{OnlyStudentID: "s2"})

	require.Len(t, out.StudentStats, 1)
	assert.Equal(t, "s2", out.StudentStats[0].StudentID)
	assert.Equal(t, 2, out.StudentStats[0].Total)
	assert.Equal(t, 50.0, out.StudentStats[0].AttendancePercentage)
}

func TestBuildStatsEmptyInput(t *testing.T) {
	out := BuildStats(nil, StatsOptions{})

	assert.Empty(t, out.ChartData)
	assert.Empty(t, out.StudentStats)
	assert.Equal(t, 0, out.Stats.TotalStudents)
}

func TestBuildStatsChartSortedByDate(t *testing.T) {
	days := []model.AttendanceDayModel{
		day(t, "2024-01-12", map[string]any{"s1": model.StatusPresent}, nil),
		day(t, "2024-01-10", map[string]any{"s1": model.StatusPresent}, nil),
		day(t, "2024-01-11", map[string]any{"s1": model.StatusAbsent}, nil),
	}

	out := BuildStats(days, StatsOptions{})

	require.Len(t, out.ChartData, 3)
	assert.Equal(t, "2024-01-10", out.ChartData[0].Date)
	assert.Equal(t, "2024-01-11", out.ChartData[1].Date)
	assert.Equal(t, "2024-01-12", out.ChartData[2].Date)
}

func TestFlattenDays(t *testing.T) {
	d := day(t, "2024-01-10", map[string]any{
		"s1": model.StatusPresent,
		"s2": model.StatusApprovedLeave,
	}, map[string]any{"s2": "medical"})

	names := map[string]string{"s1": "Alice", "s2": "Bob"}
	rows := FlattenDays([]model.AttendanceDayModel{d}, names, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].StudentName)
	assert.Equal(t, model.StatusPresent, rows[0].Status)
	assert.Empty(t, rows[0].Reason)
	assert.Equal(t, "Wednesday", rows[0].Day)

	assert.Equal(t, "Bob", rows[1].StudentName)
	assert.Equal(t, model.StatusApprovedLeave, rows[1].Status)
	assert.Equal(t, "medical", rows[1].Reason)
}

func TestFlattenDaysStudentFilter(t *testing.T) {
	d := day(t, "2024-01-10", map[string]any{
		"s1": model.StatusPresent,
		"s2": model.StatusAbsent,
	}, nil)

	rows := FlattenDays([]model.AttendanceDayModel{d}, nil, map[string]struct{}{"s2": {}})

	require.Len(t, rows, 1)
	assert.Equal(t, "s2", rows[0].StudentID)
}
