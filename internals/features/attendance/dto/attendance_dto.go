package dto

/* ===============================
   Requests
=================================*/

type RecordAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Status    string `json:"status" validate:"required,oneof=present absent late approved_leave"`
	// Optional; defaults to today in the reference timezone.
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	// Required only when status = approved_leave.
	Reason string `json:"reason,omitempty" validate:"required_if=Status approved_leave"`
}

type DeleteAttendanceRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

/* ===============================
   Responses
=================================*/

// AttendanceRow is one flattened (document, student) pair.
type AttendanceRow struct {
	ID             string `json:"id"`
	StudentID      string `json:"student_id"`
	StudentName    string `json:"student_name,omitempty"`
	Date           string `json:"date"`
	Day            string `json:"day"`
	Status         string `json:"status"`
	Reason         string `json:"reason,omitempty"`
	ClassSectionID string `json:"class_section_id"`
	CoachUserID    string `json:"coach_user_id,omitempty"`
}

type AttendanceChartPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
}

type AttendanceTotals struct {
	TotalPresent  int `json:"total_present"`
	TotalAbsent   int `json:"total_absent"`
	TotalLate     int `json:"total_late"`
	TotalStudents int `json:"total_students"`
}

type StudentAttendanceStat struct {
	StudentID   string  `json:"student_id"`
	StudentName string  `json:"student_name,omitempty"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	Late        int     `json:"late"`
	Total       int     `json:"total"`
	// (present + 0.5*late) / total * 100; approved_leave days never count.
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type AttendanceStatsResponse struct {
	ChartData    []AttendanceChartPoint  `json:"chart_data"`
	Stats        AttendanceTotals        `json:"stats"`
	StudentStats []StudentAttendanceStat `json:"student_stats"`
}
