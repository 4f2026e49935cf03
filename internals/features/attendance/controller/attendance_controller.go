package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	batchService "coachingku_backend/internals/features/academics/batches/service"
	"coachingku_backend/internals/features/attendance/dto"
	"coachingku_backend/internals/features/attendance/service"
	helper "coachingku_backend/internals/helpers"
	featuresMiddleware "coachingku_backend/internals/middlewares/features"
)

var validate = validator.New()

type AttendanceController struct {
	DB       *gorm.DB
	Resolver batchService.BatchResolver
}

func NewAttendanceController(db *gorm.DB, resolver batchService.BatchResolver) *AttendanceController {
	return &AttendanceController{DB: db, Resolver: resolver}
}

/* =========================================================
   POST /api/a/attendance
========================================================= */
func (ctrl *AttendanceController) RecordAttendance(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RecordAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := helper.ParseDateOrToday(req.Date)
	if err != nil {
		return err
	}

	studentID, _ := uuid.Parse(req.StudentID)
	student, err := service.LookupStudent(c.UserContext(), ctrl.DB, schoolID, studentID)
	if err != nil {
		return err
	}

	if err := featuresMiddleware.EnsureCanManageClassSection(c, ctrl.DB, schoolID, *student.StudentClassSectionID); err != nil {
		return err
	}

	if err := service.SetAttendance(c.UserContext(), ctrl.DB, schoolID, student, req.Status, date, strings.TrimSpace(req.Reason)); err != nil {
		return err
	}
	return helper.JsonOK(c, "attendance recorded", fiber.Map{"success": true})
}

/* =========================================================
   DELETE /api/a/attendance
========================================================= */
func (ctrl *AttendanceController) RemoveAttendance(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.DeleteAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return err
	}

	studentID, _ := uuid.Parse(req.StudentID)
	student, err := service.LookupStudent(c.UserContext(), ctrl.DB, schoolID, studentID)
	if err != nil {
		return err
	}

	if err := featuresMiddleware.EnsureCanManageClassSection(c, ctrl.DB, schoolID, *student.StudentClassSectionID); err != nil {
		return err
	}

	if err := service.RemoveAttendance(c.UserContext(), ctrl.DB, schoolID, *student.StudentClassSectionID, studentID, date); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "attendance entry removed", fiber.Map{"success": true})
}

/* =========================================================
   GET /api/u/attendance?class_section_id=&batch=&date=
========================================================= */
func (ctrl *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	date, err := helper.ParseDateOrToday(c.Query("date"))
	if err != nil {
		return err
	}

	scope, err := ctrl.resolveScope(c, schoolID)
	if err != nil {
		return err
	}
	if scope.empty {
		return helper.JsonOK(c, "ok", []dto.AttendanceRow{})
	}

	days, err := service.FetchDays(c.UserContext(), ctrl.DB, schoolID, scope.classSectionIDs, &date, &date)
	if err != nil {
		return err
	}
	names, err := service.StudentNames(c.UserContext(), ctrl.DB, schoolID, days)
	if err != nil {
		return err
	}

	rows := service.FlattenDays(days, names, scope.studentFilter)
	return helper.JsonOK(c, "ok", rows)
}

/* =========================================================
   GET /api/u/attendance/stats?class_section_id=&batch=&student_id=&start_date=&end_date=
========================================================= */
func (ctrl *AttendanceController) GetAttendanceStats(c *fiber.Ctx) error {
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

	onlyStudent := ""
	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id is not a valid UUID")
		}
		onlyStudent = id.String()
	}

	scope, err := ctrl.resolveScope(c, schoolID)
	if err != nil {
		return err
	}
	if scope.empty {
		return helper.JsonOK(c, "ok", dto.AttendanceStatsResponse{
			ChartData:    []dto.AttendanceChartPoint{},
			StudentStats: []dto.StudentAttendanceStat{},
		})
	}

	days, err := service.FetchDays(c.UserContext(), ctrl.DB, schoolID, scope.classSectionIDs, startDate, endDate)
	if err != nil {
		return err
	}
	names, err := service.StudentNames(c.UserContext(), ctrl.DB, schoolID, days)
	if err != nil {
		return err
	}

	stats := service.BuildStats(days, service.StatsOptions{
		StudentFilter: scope.studentFilter,
		OnlyStudentID: onlyStudent,
		Names:         names,
	})
	return helper.JsonOK(c, "ok", stats)
}

/* =========================================================
   Batch / class scoping shared by the read paths
========================================================= */

type readScope struct {
	// nil = no class filter; empty slice never reaches FetchDays (empty=true)
	classSectionIDs []uuid.UUID
	// nil = no batch filter
	studentFilter map[string]struct{}
	empty         bool
}

// resolveScope expands ?batch= through the join resolver and intersects it
// with an explicit ?class_section_id=. A class outside the batch's resolved
// set short-circuits to an empty (not error) result, as does a batch with
// no students.
func (ctrl *AttendanceController) resolveScope(c *fiber.Ctx, schoolID uuid.UUID) (readScope, error) {
	scope := readScope{}

	var explicitClass *uuid.UUID
	if s := strings.TrimSpace(c.Query("class_section_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return scope, fiber.NewError(fiber.StatusBadRequest, "class_section_id is not a valid UUID")
		}
		explicitClass = &id
	}

	batch := strings.TrimSpace(c.Query("batch"))
	if batch == "" {
		if explicitClass != nil {
			scope.classSectionIDs = []uuid.UUID{*explicitClass}
		}
		return scope, nil
	}

	classIDs, err := ctrl.Resolver.ClassSectionIDsForBatch(c.UserContext(), schoolID, batch)
	if err != nil {
		return scope, fiber.NewError(fiber.StatusInternalServerError, "failed to resolve batch")
	}
	studentIDs, err := ctrl.Resolver.StudentIDsForBatch(c.UserContext(), schoolID, batch)
	if err != nil {
		return scope, fiber.NewError(fiber.StatusInternalServerError, "failed to resolve batch")
	}

	if len(studentIDs) == 0 {
		scope.empty = true
		return scope, nil
	}

	if explicitClass != nil {
		found := false
		for _, id := range classIDs {
			if id == *explicitClass {
				found = true
				break
			}
		}
		if !found {
			scope.empty = true
			return scope, nil
		}
		scope.classSectionIDs = []uuid.UUID{*explicitClass}
	} else {
		if len(classIDs) == 0 {
			scope.empty = true
			return scope, nil
		}
		scope.classSectionIDs = classIDs
	}

	// a class section can mix students from several batches, so rows are
	// additionally filtered per student id
	scope.studentFilter = make(map[string]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		scope.studentFilter[id.String()] = struct{}{}
	}
	return scope, nil
}
