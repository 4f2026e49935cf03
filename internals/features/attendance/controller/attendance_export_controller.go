package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"coachingku_backend/internals/features/attendance/service"
	helper "coachingku_backend/internals/helpers"
)

/* =========================================================
   GET /api/a/attendance/export?class_section_id=&batch=&start_date=&end_date=
========================================================= */
func (ctrl *AttendanceController) ExportAttendance(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var startDate, endDate *time.Time
	if s := strings.TrimSpace(c.Query("start_date")); s != "" {
		d, err := helper.ParseDate(s)
		if err != nil {
			return err
		}
		startDate = &d
	}
	if s := strings.TrimSpace(c.Query("end_date")); s != "" {
		d, err := helper.ParseDate(s)
		if err != nil {
			return err
		}
		endDate = &d
	}

	scope, err := ctrl.resolveScope(c, schoolID)
	if err != nil {
		return err
	}

	rows := make([]serviceRow, 0)
	if !scope.empty {
		days, err := service.FetchDays(c.UserContext(), ctrl.DB, schoolID, scope.classSectionIDs, startDate, endDate)
		if err != nil {
			return err
		}
		names, err := service.StudentNames(c.UserContext(), ctrl.DB, schoolID, days)
		if err != nil {
			return err
		}
		for _, r := range service.FlattenDays(days, names, scope.studentFilter) {
			rows = append(rows, serviceRow{r.Date, r.Day, r.ClassSectionID, r.StudentID, r.StudentName, r.Status, r.Reason})
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := []string{"Date", "Day", "Class Section", "Student ID", "Student Name", "Status", "Leave Reason"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, r := range rows {
		values := []string{r.date, r.day, r.classSection, r.studentID, r.studentName, r.status, r.reason}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build workbook")
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", helper.FormatDate(helper.Today()))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

type serviceRow struct {
	date, day, classSection, studentID, studentName, status, reason string
}
