package service

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testModel "coachingku_backend/internals/features/academics/tests/model"
	"coachingku_backend/internals/features/marks/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func registryTest(t *testing.T, name, date string, subjectID, classID uuid.UUID, maxMarks float64) testModel.TestModel {
	t.Helper()
	return testModel.TestModel{
		TestID:             uuid.New(),
		TestSchoolID:       uuid.New(),
		TestClassSectionID: classID,
		TestSubjectID:      subjectID,
		TestName:           name,
		TestDate:           mustDate(t, date),
		TestMaxMarks:       maxMarks,
	}
}

func markDoc(t *testing.T, reg testModel.TestModel, entries map[string]model.MarkEntry) model.MarkTestModel {
	t.Helper()
	raw, err := sonic.Marshal(entries)
	require.NoError(t, err)
	return model.MarkTestModel{
		MarkTestID:             uuid.New(),
		MarkTestSchoolID:       reg.TestSchoolID,
		MarkTestTestID:         reg.TestID,
		MarkTestClassSectionID: reg.TestClassSectionID,
		MarkTestSubjectID:      reg.TestSubjectID,
		MarkTestStudents:       raw,
	}
}

func TestBuildStatsAveragePercentage(t *testing.T) {
	// One student, two tests: 80/100 and 70/100.
	// AveragePercentage = 150/200 * 100 = 75.00
	subject := uuid.New()
	class := uuid.New()
	t1 := registryTest(t, "Unit Test 1", "2024-01-10", subject, class, 100)
	t2 := registryTest(t, "Unit Test 2", "2024-01-17", subject, class, 100)

	tests := []testModel.TestModel{t1, t2}
	docs := []model.MarkTestModel{
		markDoc(t, t1, map[string]model.MarkEntry{"s1": {Marks: 80, MaxMarks: 100}}),
		markDoc(t, t2, map[string]model.MarkEntry{"s1": {Marks: 70, MaxMarks: 100}}),
	}

	out := BuildStats(tests, docs, StatsOptions{
		Subjects: []SubjectInfo{{ID: subject.String(), Name: "Math"}},
	})

	assert.Equal(t, 2, out.Stats.TotalTests)
	assert.Equal(t, 75.0, out.Stats.AveragePercentage)
	assert.Equal(t, 75.0, out.Stats.AverageMarks)

	require.Len(t, out.StudentStats, 1)
	s1 := out.StudentStats[0]
	assert.Equal(t, 150.0, s1.TotalMarks)
	assert.Equal(t, 200.0, s1.TotalMaxMarks)
	assert.Equal(t, 75.0, s1.AveragePercentage)
	require.Len(t, s1.Tests, 2)
	assert.Equal(t, "2024-01-10", s1.Tests[0].Date)
	assert.Equal(t, 80.0, s1.Tests[0].Marks)
}

func TestBuildStatsMergesSubjectsByNormalizedName(t *testing.T) {
	// " Math " in one class and "math" in another merge under one key in
	// the all-classes view; the display name keeps the first stored casing.
	subA, subB := uuid.New(), uuid.New()
	classA, classB := uuid.New(), uuid.New()
	t1 := registryTest(t, "Quiz A", "2024-01-10", subA, classA, 100)
	t2 := registryTest(t, "Quiz B", "2024-01-10", subB, classB, 100)

	tests := []testModel.TestModel{t1, t2}
	docs := []model.MarkTestModel{
		markDoc(t, t1, map[string]model.MarkEntry{"s1": {Marks: 60, MaxMarks: 100}}),
		markDoc(t, t2, map[string]model.MarkEntry{"s2": {Marks: 90, MaxMarks: 100}}),
	}

	out := BuildStats(tests, docs, StatsOptions{
		Subjects: []SubjectInfo{
			{ID: subA.String(), Name: " Math "},
			{ID: subB.String(), Name: "math"},
		},
		ClassNames: map[string]string{
			classA.String(): "Class A",
			classB.String(): "Class B",
		},
	})

	require.Len(t, out.SubjectAverages, 1)
	merged := out.SubjectAverages[0]
	assert.Equal(t, "math", merged.SubjectKey)
	assert.Equal(t, " Math ", merged.SubjectName)
	assert.Equal(t, 150.0, merged.TotalMarks)
	assert.Equal(t, 2, merged.TestCount)
	assert.Equal(t, 75.0, merged.AveragePercentage)

	// All-classes mode also carries a per-class breakdown per date.
	require.Len(t, out.ChartData, 1)
	require.Len(t, out.ChartData[0].Subjects, 1)
	require.Len(t, out.ChartData[0].Classes, 2)
	assert.Equal(t, "Class A", out.ChartData[0].Classes[0].ClassSectionName)
	assert.Equal(t, "Class B", out.ChartData[0].Classes[1].ClassSectionName)
}

func TestBuildStatsClassFilterKeepsSubjectsApart(t *testing.T) {
	subA, subB := uuid.New(), uuid.New()
	class := uuid.New()
	t1 := registryTest(t, "Quiz A", "2024-01-10", subA, class, 100)
	t2 := registryTest(t, "Quiz B", "2024-01-10", subB, class, 100)

	docs := []model.MarkTestModel{
		markDoc(t, t1, map[string]model.MarkEntry{"s1": {Marks: 60, MaxMarks: 100}}),
		markDoc(t, t2, map[string]model.MarkEntry{"s1": {Marks: 90, MaxMarks: 100}}),
	}

	out := BuildStats([]testModel.TestModel{t1, t2}, docs, StatsOptions{
		ClassFilterActive: true,
		Subjects: []SubjectInfo{
			{ID: subA.String(), Name: "Math"},
			{ID: subB.String(), Name: "math"},
		},
	})

	// Keyed by subject id, so same-named subjects stay separate.
	require.Len(t, out.SubjectAverages, 2)
	assert.NotEqual(t, out.SubjectAverages[0].SubjectKey, out.SubjectAverages[1].SubjectKey)

	// No per-class slices in single-class mode.
	require.Len(t, out.ChartData, 1)
	assert.Empty(t, out.ChartData[0].Classes)
}

func TestBuildStatsSubjectAveragesAlphabetical(t *testing.T) {
	subM, subE, subS := uuid.New(), uuid.New(), uuid.New()
	class := uuid.New()
	t1 := registryTest(t, "T1", "2024-01-10", subM, class, 100)
	t2 := registryTest(t, "T2", "2024-01-10", subE, class, 100)
	t3 := registryTest(t, "T3", "2024-01-10", subS, class, 100)

	docs := []model.MarkTestModel{
		markDoc(t, t1, map[string]model.MarkEntry{"s1": {Marks: 50, MaxMarks: 100}}),
		markDoc(t, t2, map[string]model.MarkEntry{"s1": {Marks: 50, MaxMarks: 100}}),
		markDoc(t, t3, map[string]model.MarkEntry{"s1": {Marks: 50, MaxMarks: 100}}),
	}

	out := BuildStats([]testModel.TestModel{t1, t2, t3}, docs, StatsOptions{
		Subjects: []SubjectInfo{
			{ID: subM.String(), Name: "Math"},
			{ID: subE.String(), Name: "English"},
			{ID: subS.String(), Name: "Science"},
		},
	})

	require.Len(t, out.SubjectAverages, 3)
	assert.Equal(t, "English", out.SubjectAverages[0].SubjectName)
	assert.Equal(t, "Math", out.SubjectAverages[1].SubjectName)
	assert.Equal(t, "Science", out.SubjectAverages[2].SubjectName)
}

func TestBuildStatsStudentFilter(t *testing.T) {
	subject := uuid.New()
	class := uuid.New()
	t1 := registryTest(t, "Quiz", "2024-01-10", subject, class, 100)

	docs := []model.MarkTestModel{
		markDoc(t, t1, map[string]model.MarkEntry{
			"s1": {Marks: 80, MaxMarks: 100},
			"s2": {Marks: 40, MaxMarks: 100},
		}),
	}

	out := BuildStats([]testModel.TestModel{t1}, docs, StatsOptions{
		StudentFilter: map[string]struct{}{"s1": {}},
		Subjects:      []SubjectInfo{{ID: subject.String(), Name: "Math"}},
	})

	require.Len(t, out.StudentStats, 1)
	assert.Equal(t, "s1", out.StudentStats[0].StudentID)
	assert.Equal(t, 80.0, out.Stats.AverageMarks)
}

func TestBuildStatsEmptyInput(t *testing.T) {
	out := BuildStats(nil, nil, StatsOptions{})

	assert.Empty(t, out.ChartData)
	assert.Empty(t, out.StudentStats)
	assert.Empty(t, out.SubjectAverages)
	assert.Equal(t, 0, out.Stats.TotalTests)
	assert.Equal(t, 0.0, out.Stats.AveragePercentage)
}

func TestFlattenMarks(t *testing.T) {
	subject := uuid.New()
	class := uuid.New()
	t1 := registryTest(t, "Quiz", "2024-01-10", subject, class, 100)

	docs := []model.MarkTestModel{
		markDoc(t, t1, map[string]model.MarkEntry{
			"s1": {Marks: 80, MaxMarks: 100},
			"s2": {Marks: 60, MaxMarks: 100},
		}),
	}
	names := map[string]string{"s1": "Alice", "s2": "Bob"}

	rows := FlattenMarks([]testModel.TestModel{t1}, docs, names, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].StudentName)
	assert.Equal(t, "Quiz", rows[0].TestName)
	assert.Equal(t, "2024-01-10", rows[0].Date)
	assert.Equal(t, 80.0, rows[0].Marks)

	filtered := FlattenMarks([]testModel.TestModel{t1}, docs, names, map[string]struct{}{"s2": {}})
	require.Len(t, filtered, 1)
	assert.Equal(t, "s2", filtered[0].StudentID)
}
