package dto

/* ===============================
   Requests
=================================*/

type RecordMarksRequest struct {
	TestID    string  `json:"test_id" validate:"required,uuid"`
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Marks     float64 `json:"marks" validate:"min=0"`
	// Defaults to 100 when omitted.
	MaxMarks *float64 `json:"max_marks,omitempty" validate:"omitempty,gt=0"`
}

type BulkMarkEntry struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Marks     float64 `json:"marks" validate:"min=0"`
	MaxMarks  *float64 `json:"max_marks,omitempty" validate:"omitempty,gt=0"`
}

type BulkRecordMarksRequest struct {
	TestID  string          `json:"test_id" validate:"required,uuid"`
	Entries []BulkMarkEntry `json:"entries" validate:"required,min=1,dive"`
}

/* ===============================
   Responses
=================================*/

// MarkRow is one flattened (test document, student) pair.
type MarkRow struct {
	ID             string  `json:"id"`
	TestID         string  `json:"test_id"`
	TestName       string  `json:"test_name,omitempty"`
	StudentID      string  `json:"student_id"`
	StudentName    string  `json:"student_name,omitempty"`
	SubjectID      string  `json:"subject_id"`
	ClassSectionID string  `json:"class_section_id"`
	Date           string  `json:"date,omitempty"`
	Marks          float64 `json:"marks"`
	MaxMarks       float64 `json:"max_marks"`
}

type SubjectSlice struct {
	SubjectKey    string  `json:"subject_key"`
	SubjectName   string  `json:"subject_name"`
	TotalMarks    float64 `json:"total_marks"`
	TotalMaxMarks float64 `json:"total_max_marks"`
	Count         int     `json:"count"`
}

type ClassSlice struct {
	ClassSectionID   string  `json:"class_section_id"`
	ClassSectionName string  `json:"class_section_name,omitempty"`
	TotalMarks       float64 `json:"total_marks"`
	TotalMaxMarks    float64 `json:"total_max_marks"`
	Count            int     `json:"count"`
}

type MarksChartPoint struct {
	Date          string         `json:"date"`
	TotalMarks    float64        `json:"total_marks"`
	TotalMaxMarks float64        `json:"total_max_marks"`
	Count         int            `json:"count"`
	Subjects      []SubjectSlice `json:"subjects"`
	// Populated only in "all classes" mode (no class filter).
	Classes []ClassSlice `json:"classes,omitempty"`
}

type StudentTestResult struct {
	TestID     string  `json:"test_id"`
	TestName   string  `json:"test_name,omitempty"`
	Date       string  `json:"date,omitempty"`
	Marks      float64 `json:"marks"`
	MaxMarks   float64 `json:"max_marks"`
	Percentage float64 `json:"percentage"`
}

type StudentMarksStat struct {
	StudentID         string              `json:"student_id"`
	StudentName       string              `json:"student_name,omitempty"`
	TotalMarks        float64             `json:"total_marks"`
	TotalMaxMarks     float64             `json:"total_max_marks"`
	TestCount         int                 `json:"test_count"`
	AverageMarks      float64             `json:"average_marks"`
	AveragePercentage float64             `json:"average_percentage"`
	Tests             []StudentTestResult `json:"tests"`
}

type SubjectAverage struct {
	SubjectKey        string  `json:"subject_key"`
	SubjectName       string  `json:"subject_name"`
	TotalMarks        float64 `json:"total_marks"`
	TotalMaxMarks     float64 `json:"total_max_marks"`
	TestCount         int     `json:"test_count"`
	AveragePercentage float64 `json:"average_percentage"`
}

type MarksTotals struct {
	TotalTests        int     `json:"total_tests"`
	TotalStudents     int     `json:"total_students"`
	AverageMarks      float64 `json:"average_marks"`
	AveragePercentage float64 `json:"average_percentage"`
}

type MarksStatsResponse struct {
	ChartData       []MarksChartPoint  `json:"chart_data"`
	Stats           MarksTotals        `json:"stats"`
	StudentStats    []StudentMarksStat `json:"student_stats"`
	SubjectAverages []SubjectAverage   `json:"subject_averages"`
}
