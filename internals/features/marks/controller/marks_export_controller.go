package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"coachingku_backend/internals/features/marks/service"
	helper "coachingku_backend/internals/helpers"
)

/* =========================================================
   GET /api/a/marks/export?test_id=&class_section_id=&subject_id=&batch=&start_date=&end_date=
========================================================= */
func (ctrl *MarksController) ExportMarks(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	filters, err := ctrl.parseFilters(c)
	if err != nil {
		return err
	}
	studentFilter, emptyBatch, err := ctrl.resolveBatchStudents(c, schoolID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	header := []string{"Date", "Test", "Subject ID", "Class Section", "Student ID", "Student Name", "Marks", "Max Marks"}
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	if !emptyBatch {
		tests, err := service.FetchTests(c.UserContext(), ctrl.DB, schoolID, filters.testID, filters.classSectionID, filters.subjectID, filters.startDate, filters.endDate)
		if err != nil {
			return err
		}
		docs, err := service.FetchMarkDocs(c.UserContext(), ctrl.DB, schoolID, testIDs(tests))
		if err != nil {
			return err
		}
		names, err := service.StudentNamesForDocs(c.UserContext(), ctrl.DB, schoolID, docs)
		if err != nil {
			return err
		}

		for rowIdx, r := range service.FlattenMarks(tests, docs, names, studentFilter) {
			values := []any{r.Date, r.TestName, r.SubjectID, r.ClassSectionID, r.StudentID, r.StudentName, r.Marks, r.MaxMarks}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build workbook")
	}

	filename := fmt.Sprintf("marks-%s.xlsx", helper.FormatDate(helper.Today()))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
