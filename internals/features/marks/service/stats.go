package service

import (
	"math"
	"sort"
	"strings"

	testModel "coachingku_backend/internals/features/academics/tests/model"
	"coachingku_backend/internals/features/marks/dto"
	"coachingku_backend/internals/features/marks/model"
	helper "coachingku_backend/internals/helpers"
)

// SubjectInfo carries a subject in its natural stored order. In "all
// classes" mode, same-named subjects defined independently per class merge
// under the normalized (trimmed, lower-cased) name, and the display name is
// the first original casing encountered in this order.
type SubjectInfo struct {
	ID   string
	Name string
}

type StatsOptions struct {
	// True when an explicit class filter was given; switches subject
	// aggregation keys from normalized names back to subject ids and
	// suppresses the per-class sub-breakdown.
	ClassFilterActive bool
	// Batch's resolved student-id set; nil = no batch filter.
	StudentFilter map[string]struct{}

	Subjects     []SubjectInfo
	ClassNames   map[string]string
	StudentNames map[string]string
}

type subjectIdentity struct {
	key     string
	display string
}

// subjectIdentities resolves each subject id to its aggregation key and
// display name according to the mode.
func subjectIdentities(opts StatsOptions) map[string]subjectIdentity {
	byID := make(map[string]subjectIdentity, len(opts.Subjects))
	firstDisplay := map[string]string{}

	for _, s := range opts.Subjects {
		if opts.ClassFilterActive {
			byID[s.ID] = subjectIdentity{key: s.ID, display: s.Name}
			continue
		}
		norm := strings.ToLower(strings.TrimSpace(s.Name))
		if _, seen := firstDisplay[norm]; !seen {
			firstDisplay[norm] = s.Name
		}
		byID[s.ID] = subjectIdentity{key: norm, display: firstDisplay[norm]}
	}
	return byID
}

type sliceTally struct {
	marks float64
	max   float64
	count int
}

type dateTally struct {
	marks    float64
	max      float64
	count    int
	subjects map[string]*sliceTally
	subNames map[string]string
	classes  map[string]*sliceTally
}

type studentMarksTally struct {
	marks float64
	max   float64
	count int
	tests []dto.StudentTestResult
}

// BuildStats folds the registry rows and mark documents into the stats
// response. Pure: no I/O, deterministic ordering (dates ascending, subject
// averages alphabetical by display name).
func BuildStats(tests []testModel.TestModel, docs []model.MarkTestModel, opts StatsOptions) dto.MarksStatsResponse {
	testsByID := make(map[string]*testModel.TestModel, len(tests))
	for i := range tests {
		testsByID[tests[i].TestID.String()] = &tests[i]
	}
	identities := subjectIdentities(opts)

	dates := map[string]*dateTally{}
	students := map[string]*studentMarksTally{}
	subjectTotals := map[string]*sliceTally{}
	subjectDisplay := map[string]string{}

	var sumMarks, sumMax float64
	entryCount := 0

	for i := range docs {
		doc := &docs[i]
		test, ok := testsByID[doc.MarkTestTestID.String()]
		if !ok {
			continue // document for a test outside the filter window
		}
		date := helper.FormatDate(test.TestDate)
		identity, ok := identities[test.TestSubjectID.String()]
		if !ok {
			identity = subjectIdentity{key: test.TestSubjectID.String()}
		}

		for studentID, entry := range doc.Entries() {
			if opts.StudentFilter != nil {
				if _, ok := opts.StudentFilter[studentID]; !ok {
					continue
				}
			}
			if entry.MaxMarks <= 0 {
				continue
			}

			sumMarks += entry.Marks
			sumMax += entry.MaxMarks
			entryCount++

			// per-student
			st := students[studentID]
			if st == nil {
				st = &studentMarksTally{}
				students[studentID] = st
			}
			st.marks += entry.Marks
			st.max += entry.MaxMarks
			st.count++
			st.tests = append(st.tests, dto.StudentTestResult{
				TestID:     test.TestID.String(),
				TestName:   test.TestName,
				Date:       date,
				Marks:      entry.Marks,
				MaxMarks:   entry.MaxMarks,
				Percentage: round2(entry.Marks / entry.MaxMarks * 100),
			})

			// per-date bucket + nested breakdowns
			dt := dates[date]
			if dt == nil {
				dt = &dateTally{
					subjects: map[string]*sliceTally{},
					subNames: map[string]string{},
					classes:  map[string]*sliceTally{},
				}
				dates[date] = dt
			}
			dt.marks += entry.Marks
			dt.max += entry.MaxMarks
			dt.count++

			sub := dt.subjects[identity.key]
			if sub == nil {
				sub = &sliceTally{}
				dt.subjects[identity.key] = sub
				dt.subNames[identity.key] = identity.display
			}
			sub.marks += entry.Marks
			sub.max += entry.MaxMarks
			sub.count++

			if !opts.ClassFilterActive {
				classKey := test.TestClassSectionID.String()
				cl := dt.classes[classKey]
				if cl == nil {
					cl = &sliceTally{}
					dt.classes[classKey] = cl
				}
				cl.marks += entry.Marks
				cl.max += entry.MaxMarks
				cl.count++
			}

			// global subject averages
			gt := subjectTotals[identity.key]
			if gt == nil {
				gt = &sliceTally{}
				subjectTotals[identity.key] = gt
				subjectDisplay[identity.key] = identity.display
			}
			gt.marks += entry.Marks
			gt.max += entry.MaxMarks
			gt.count++
		}
	}

	chart := make([]dto.MarksChartPoint, 0, len(dates))
	for date, dt := range dates {
		point := dto.MarksChartPoint{
			Date:          date,
			TotalMarks:    round2(dt.marks),
			TotalMaxMarks: round2(dt.max),
			Count:         dt.count,
			Subjects:      make([]dto.SubjectSlice, 0, len(dt.subjects)),
		}
		for key, tally := range dt.subjects {
			point.Subjects = append(point.Subjects, dto.SubjectSlice{
				SubjectKey:    key,
				SubjectName:   dt.subNames[key],
				TotalMarks:    round2(tally.marks),
				TotalMaxMarks: round2(tally.max),
				Count:         tally.count,
			})
		}
		sort.Slice(point.Subjects, func(i, j int) bool {
			return point.Subjects[i].SubjectName < point.Subjects[j].SubjectName
		})

		if !opts.ClassFilterActive {
			point.Classes = make([]dto.ClassSlice, 0, len(dt.classes))
			for key, tally := range dt.classes {
				point.Classes = append(point.Classes, dto.ClassSlice{
					ClassSectionID:   key,
					ClassSectionName: opts.ClassNames[key],
					TotalMarks:       round2(tally.marks),
					TotalMaxMarks:    round2(tally.max),
					Count:            tally.count,
				})
			}
			sort.Slice(point.Classes, func(i, j int) bool {
				if point.Classes[i].ClassSectionName != point.Classes[j].ClassSectionName {
					return point.Classes[i].ClassSectionName < point.Classes[j].ClassSectionName
				}
				return point.Classes[i].ClassSectionID < point.Classes[j].ClassSectionID
			})
		}
		chart = append(chart, point)
	}
	sort.Slice(chart, func(i, j int) bool { return chart[i].Date < chart[j].Date })

	studentStats := make([]dto.StudentMarksStat, 0, len(students))
	for studentID, st := range students {
		sort.Slice(st.tests, func(i, j int) bool {
			if st.tests[i].Date != st.tests[j].Date {
				return st.tests[i].Date < st.tests[j].Date
			}
			return st.tests[i].TestID < st.tests[j].TestID
		})
		stat := dto.StudentMarksStat{
			StudentID:     studentID,
			StudentName:   opts.StudentNames[studentID],
			TotalMarks:    round2(st.marks),
			TotalMaxMarks: round2(st.max),
			TestCount:     st.count,
			Tests:         st.tests,
		}
		if st.count > 0 {
			stat.AverageMarks = round2(st.marks / float64(st.count))
		}
		if st.max > 0 {
			stat.AveragePercentage = round2(st.marks / st.max * 100)
		}
		studentStats = append(studentStats, stat)
	}
	sort.Slice(studentStats, func(i, j int) bool {
		if studentStats[i].StudentName != studentStats[j].StudentName {
			return studentStats[i].StudentName < studentStats[j].StudentName
		}
		return studentStats[i].StudentID < studentStats[j].StudentID
	})

	subjectAverages := make([]dto.SubjectAverage, 0, len(subjectTotals))
	for key, tally := range subjectTotals {
		avg := dto.SubjectAverage{
			SubjectKey:    key,
			SubjectName:   subjectDisplay[key],
			TotalMarks:    round2(tally.marks),
			TotalMaxMarks: round2(tally.max),
			TestCount:     tally.count,
		}
		if tally.max > 0 {
			avg.AveragePercentage = round2(tally.marks / tally.max * 100)
		}
		subjectAverages = append(subjectAverages, avg)
	}
	sort.Slice(subjectAverages, func(i, j int) bool {
		if subjectAverages[i].SubjectName != subjectAverages[j].SubjectName {
			return subjectAverages[i].SubjectName < subjectAverages[j].SubjectName
		}
		return subjectAverages[i].SubjectKey < subjectAverages[j].SubjectKey
	})

	totals := dto.MarksTotals{
		TotalTests:    len(tests),
		TotalStudents: len(studentStats),
	}
	if entryCount > 0 {
		totals.AverageMarks = round2(sumMarks / float64(entryCount))
	}
	if sumMax > 0 {
		totals.AveragePercentage = round2(sumMarks / sumMax * 100)
	}

	return dto.MarksStatsResponse{
		ChartData:       chart,
		Stats:           totals,
		StudentStats:    studentStats,
		SubjectAverages: subjectAverages,
	}
}

// FlattenMarks turns mark documents into per-student rows for the list
// endpoint. Batch filtering intersects directly on student id (mark keys
// are student ids, not class ids).
func FlattenMarks(tests []testModel.TestModel, docs []model.MarkTestModel, studentNames map[string]string, studentFilter map[string]struct{}) []dto.MarkRow {
	testsByID := make(map[string]*testModel.TestModel, len(tests))
	for i := range tests {
		testsByID[tests[i].TestID.String()] = &tests[i]
	}

	rows := make([]dto.MarkRow, 0)
	for i := range docs {
		doc := &docs[i]
		testName, date := "", ""
		if test, ok := testsByID[doc.MarkTestTestID.String()]; ok {
			testName = test.TestName
			date = helper.FormatDate(test.TestDate)
		}
		for studentID, entry := range doc.Entries() {
			if studentFilter != nil {
				if _, ok := studentFilter[studentID]; !ok {
					continue
				}
			}
			rows = append(rows, dto.MarkRow{
				ID:             doc.MarkTestID.String(),
				TestID:         doc.MarkTestTestID.String(),
				TestName:       testName,
				StudentID:      studentID,
				StudentName:    studentNames[studentID],
				SubjectID:      doc.MarkTestSubjectID.String(),
				ClassSectionID: doc.MarkTestClassSectionID.String(),
				Date:           date,
				Marks:          entry.Marks,
				MaxMarks:       entry.MaxMarks,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].TestID != rows[j].TestID {
			return rows[i].TestID < rows[j].TestID
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
