package service

import (
	"math"
	"sort"

	"coachingku_backend/internals/features/attendance/dto"
	"coachingku_backend/internals/features/attendance/model"
	helper "coachingku_backend/internals/helpers"
)

// StatsOptions narrows which (student, status) entries are folded.
// StudentFilter is the batch's resolved student-id set (nil = no batch
// filter); OnlyStudentID narrows to a single student when set.
type StatsOptions struct {
	StudentFilter map[string]struct{}
	OnlyStudentID string
	Names         map[string]string
}

func (o StatsOptions) keeps(studentID string) bool {
	if o.OnlyStudentID != "" && studentID != o.OnlyStudentID {
		return false
	}
	if o.StudentFilter != nil {
		if _, ok := o.StudentFilter[studentID]; !ok {
			return false
		}
	}
	return true
}

type studentTally struct {
	present int
	absent  int
	late    int
}

// BuildStats folds fetched day documents into chart and per-student
// statistics. Pure: no I/O, deterministic output ordering.
//
// approved_leave is excluded from the three date-bucket counters and from
// the per-student total alike; a student on approved leave all period shows
// total 0 and percentage 0.
func BuildStats(days []model.AttendanceDayModel, opts StatsOptions) dto.AttendanceStatsResponse {
	dateBuckets := map[string]*dto.AttendanceChartPoint{}
	students := map[string]*studentTally{}

	for i := range days {
		day := &days[i]
		date := helper.FormatDate(day.AttendanceDayDate)

		for studentID := range day.AttendanceDayStudents {
			if !opts.keeps(studentID) {
				continue
			}
			status, ok := day.StatusOf(studentID)
			if !ok {
				continue
			}

			bucket := dateBuckets[date]
			if bucket == nil {
				bucket = &dto.AttendanceChartPoint{Date: date}
				dateBuckets[date] = bucket
			}
			tally := students[studentID]
			if tally == nil {
				tally = &studentTally{}
				students[studentID] = tally
			}

			switch status {
			case model.StatusPresent:
				bucket.Present++
				tally.present++
			case model.StatusAbsent:
				bucket.Absent++
				tally.absent++
			case model.StatusLate:
				bucket.Late++
				tally.late++
			case model.StatusApprovedLeave:
				// excluded from counters and totals everywhere
			}
		}
	}

	chart := make([]dto.AttendanceChartPoint, 0, len(dateBuckets))
	for _, b := range dateBuckets {
		chart = append(chart, *b)
	}
	sort.Slice(chart, func(i, j int) bool { return chart[i].Date < chart[j].Date })

	totals := dto.AttendanceTotals{}
	studentStats := make([]dto.StudentAttendanceStat, 0, len(students))
	for studentID, tally := range students {
		total := tally.present + tally.absent + tally.late
		pct := 0.0
		if total > 0 {
			// late is deliberately half-weighted
			weighted := float64(tally.present) + 0.5*float64(tally.late)
			pct = round2(weighted / float64(total) * 100)
		}
		studentStats = append(studentStats, dto.StudentAttendanceStat{
			StudentID:            studentID,
			StudentName:          opts.Names[studentID],
			Present:              tally.present,
			Absent:               tally.absent,
			Late:                 tally.late,
			Total:                total,
			AttendancePercentage: pct,
		})
		totals.TotalPresent += tally.present
		totals.TotalAbsent += tally.absent
		totals.TotalLate += tally.late
	}
	totals.TotalStudents = len(studentStats)

	sort.Slice(studentStats, func(i, j int) bool {
		if studentStats[i].StudentName != studentStats[j].StudentName {
			return studentStats[i].StudentName < studentStats[j].StudentName
		}
		return studentStats[i].StudentID < studentStats[j].StudentID
	})

	return dto.AttendanceStatsResponse{
		ChartData:    chart,
		Stats:        totals,
		StudentStats: studentStats,
	}
}

// FlattenDays turns day documents into per-student rows, attaching the
// leave reason only to approved_leave entries. studentFilter nil = keep all.
func FlattenDays(days []model.AttendanceDayModel, names map[string]string, studentFilter map[string]struct{}) []dto.AttendanceRow {
	rows := make([]dto.AttendanceRow, 0)
	for i := range days {
		day := &days[i]
		coach := ""
		if day.AttendanceDayCoachUserID != nil {
			coach = day.AttendanceDayCoachUserID.String()
		}

		for studentID := range day.AttendanceDayStudents {
			if studentFilter != nil {
				if _, ok := studentFilter[studentID]; !ok {
					continue
				}
			}
			status, ok := day.StatusOf(studentID)
			if !ok {
				continue
			}
			row := dto.AttendanceRow{
				ID:             day.AttendanceDayID.String(),
				StudentID:      studentID,
				StudentName:    names[studentID],
				Date:           helper.FormatDate(day.AttendanceDayDate),
				Day:            day.AttendanceDayDay,
				Status:         status,
				ClassSectionID: day.AttendanceDayClassSectionID.String(),
				CoachUserID:    coach,
			}
			if status == model.StatusApprovedLeave {
				if reason, ok := day.ReasonOf(studentID); ok {
					row.Reason = reason
				}
			}
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].StudentName != rows[j].StudentName {
			return rows[i].StudentName < rows[j].StudentName
		}
		return rows[i].StudentID < rows[j].StudentID
	})
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
