package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	batchService "coachingku_backend/internals/features/academics/batches/service"
	testModel "coachingku_backend/internals/features/academics/tests/model"
	"coachingku_backend/internals/features/marks/dto"
	"coachingku_backend/internals/features/marks/model"
	"coachingku_backend/internals/features/marks/service"
	helper "coachingku_backend/internals/helpers"
	featuresMiddleware "coachingku_backend/internals/middlewares/features"
)

const defaultMaxMarks = 100

var validate = validator.New()

type MarksController struct {
	DB       *gorm.DB
	Resolver batchService.BatchResolver
}

func NewMarksController(db *gorm.DB, resolver batchService.BatchResolver) *MarksController {
	return &MarksController{DB: db, Resolver: resolver}
}

/* =========================================================
   POST /api/a/marks
========================================================= */
func (ctrl *MarksController) RecordMarks(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RecordMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	maxMarks := float64(defaultMaxMarks)
	if req.MaxMarks != nil {
		maxMarks = *req.MaxMarks
	}
	studentID, _ := uuid.Parse(req.StudentID)
	testID, _ := uuid.Parse(req.TestID)

	// range check runs before any store access
	if err := service.ValidateMarkRange(req.StudentID, req.Marks, maxMarks); err != nil {
		return err
	}

	test, err := service.LookupTest(c.UserContext(), ctrl.DB, schoolID, testID)
	if err != nil {
		return err
	}
	if err := featuresMiddleware.EnsureCanManageClassSection(c, ctrl.DB, schoolID, test.TestClassSectionID); err != nil {
		return err
	}

	if err := service.SetMarks(c.UserContext(), ctrl.DB, schoolID, test, studentID, req.Marks, maxMarks); err != nil {
		return err
	}
	return helper.JsonOK(c, "marks recorded", fiber.Map{"success": true})
}

/* =========================================================
   POST /api/a/marks/bulk
========================================================= */
func (ctrl *MarksController) RecordMarksBulk(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BulkRecordMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	testID, _ := uuid.Parse(req.TestID)
	test, err := service.LookupTest(c.UserContext(), ctrl.DB, schoolID, testID)
	if err != nil {
		return err
	}
	if err := featuresMiddleware.EnsureCanManageClassSection(c, ctrl.DB, schoolID, test.TestClassSectionID); err != nil {
		return err
	}

	// Every entry is validated before the single merge statement runs, so
	// one bad entry aborts the whole batch with nothing written.
	entries := make(map[uuid.UUID]model.MarkEntry, len(req.Entries))
	for _, e := range req.Entries {
		maxMarks := test.TestMaxMarks
		if e.MaxMarks != nil {
			maxMarks = *e.MaxMarks
		}
		if err := service.ValidateMarkRange(e.StudentID, e.Marks, maxMarks); err != nil {
			return err
		}
		studentID, _ := uuid.Parse(e.StudentID)
		entries[studentID] = model.MarkEntry{Marks: e.Marks, MaxMarks: maxMarks}
	}

	if err := service.SetMarksForTest(c.UserContext(), ctrl.DB, schoolID, test, entries); err != nil {
		return err
	}
	return helper.JsonOK(c, "marks recorded", fiber.Map{"success": true, "count": len(entries)})
}

/* =========================================================
   DELETE /api/a/marks/:test_id/students/:student_id
========================================================= */
func (ctrl *MarksController) RemoveMarks(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	testID, err := uuid.Parse(strings.TrimSpace(c.Params("test_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "test_id is not a valid UUID")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "student_id is not a valid UUID")
	}

	test, err := service.LookupTest(c.UserContext(), ctrl.DB, schoolID, testID)
	if err != nil {
		return err
	}
	if err := featuresMiddleware.EnsureCanManageClassSection(c, ctrl.DB, schoolID, test.TestClassSectionID); err != nil {
		return err
	}

	if err := service.RemoveMarks(c.UserContext(), ctrl.DB, schoolID, testID, studentID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "marks entry removed", fiber.Map{"success": true})
}

/* =========================================================
   GET /api/u/marks?test_id=&class_section_id=&subject_id=&batch=
========================================================= */
func (ctrl *MarksController) ListMarks(c *fiber.Ctx) error {
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
	if emptyBatch {
		return helper.JsonOK(c, "ok", []dto.MarkRow{})
	}

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

	rows := service.FlattenMarks(tests, docs, names, studentFilter)
	return helper.JsonOK(c, "ok", rows)
}

/* =========================================================
   GET /api/u/marks/stats?class_section_id=&subject_id=&batch=&start_date=&end_date=
========================================================= */
func (ctrl *MarksController) GetMarksStats(c *fiber.Ctx) error {
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
	if emptyBatch {
		return helper.JsonOK(c, "ok", dto.MarksStatsResponse{
			ChartData:       []dto.MarksChartPoint{},
			StudentStats:    []dto.StudentMarksStat{},
			SubjectAverages: []dto.SubjectAverage{},
		})
	}

	tests, err := service.FetchTests(c.UserContext(), ctrl.DB, schoolID, filters.testID, filters.classSectionID, filters.subjectID, filters.startDate, filters.endDate)
	if err != nil {
		return err
	}
	docs, err := service.FetchMarkDocs(c.UserContext(), ctrl.DB, schoolID, testIDs(tests))
	if err != nil {
		return err
	}

	subjects, err := service.SubjectsInStoredOrder(c.UserContext(), ctrl.DB, schoolID)
	if err != nil {
		return err
	}
	classNames, err := service.ClassNames(c.UserContext(), ctrl.DB, schoolID)
	if err != nil {
		return err
	}
	studentNames, err := service.StudentNamesForDocs(c.UserContext(), ctrl.DB, schoolID, docs)
	if err != nil {
		return err
	}

	stats := service.BuildStats(tests, docs, service.StatsOptions{
		ClassFilterActive: filters.classSectionID != nil,
		StudentFilter:     studentFilter,
		Subjects:          subjects,
		ClassNames:        classNames,
		StudentNames:      studentNames,
	})
	return helper.JsonOK(c, "ok", stats)
}

/* =========================================================
   Shared filter parsing / batch resolution
========================================================= */

type marksFilters struct {
	testID         *uuid.UUID
	classSectionID *uuid.UUID
	subjectID      *uuid.UUID
	startDate      *time.Time
	endDate        *time.Time
}

func (ctrl *MarksController) parseFilters(c *fiber.Ctx) (marksFilters, error) {
	f := marksFilters{}

	parseID := func(param string) (*uuid.UUID, error) {
		s := strings.TrimSpace(c.Query(param))
		if s == "" {
			return nil, nil
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, param+" is not a valid UUID")
		}
		return &id, nil
	}

	var err error
	if f.testID, err = parseID("test_id"); err != nil {
		return f, err
	}
	if f.classSectionID, err = parseID("class_section_id"); err != nil {
		return f, err
	}
	if f.subjectID, err = parseID("subject_id"); err != nil {
		return f, err
	}

	if s := strings.TrimSpace(c.Query("start_date")); s != "" {
		d, err := helper.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.startDate = &d
	}
	if s := strings.TrimSpace(c.Query("end_date")); s != "" {
		d, err := helper.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.endDate = &d
	}
	return f, nil
}

// resolveBatchStudents expands ?batch= into the student-id filter set.
// Mark keys are student ids, so batch filtering intersects directly on
// student id rather than going through class sections.
func (ctrl *MarksController) resolveBatchStudents(c *fiber.Ctx, schoolID uuid.UUID) (map[string]struct{}, bool, error) {
	batch := strings.TrimSpace(c.Query("batch"))
	if batch == "" {
		return nil, false, nil
	}

	ids, err := ctrl.Resolver.StudentIDsForBatch(c.UserContext(), schoolID, batch)
	if err != nil {
		return nil, false, fiber.NewError(fiber.StatusInternalServerError, "failed to resolve batch")
	}
	if len(ids) == 0 {
		return nil, true, nil
	}

	filter := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		filter[id.String()] = struct{}{}
	}
	return filter, false, nil
}

func testIDs(tests []testModel.TestModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tests))
	for i := range tests {
		ids = append(ids, tests[i].TestID)
	}
	return ids
}
