package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectModel "coachingku_backend/internals/features/academics/subjects/model"
	"coachingku_backend/internals/features/academics/tests/dto"
	"coachingku_backend/internals/features/academics/tests/model"
	helper "coachingku_backend/internals/helpers"
	featuresMiddleware "coachingku_backend/internals/middlewares/features"
)

var validate = validator.New()

type TestController struct {
	DB *gorm.DB
}

func NewTestController(db *gorm.DB) *TestController {
	return &TestController{DB: db}
}

/* =========================================================
   POST /api/a/tests
========================================================= */
func (ctrl *TestController) CreateTest(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateTestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	classSectionID, _ := uuid.Parse(req.ClassSectionID)
	subjectID, _ := uuid.Parse(req.SubjectID)

	date, err := helper.ParseDate(req.Date)
	if err != nil {
		return err
	}

	if err := featuresMiddleware.EnsureCanManageClassSection(c, ctrl.DB, schoolID, classSectionID); err != nil {
		return err
	}

	// the subject must belong to the same class section
	var subject subjectModel.SubjectModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Select("subject_id, subject_class_section_id").
		First(&subject, "subject_id = ? AND subject_school_id = ?", subjectID, schoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to look up subject")
	}
	if subject.SubjectClassSectionID != classSectionID {
		return helper.JsonError(c, fiber.StatusBadRequest, "subject does not belong to the given class section")
	}

	maxMarks := 100.0
	if req.MaxMarks != nil {
		maxMarks = *req.MaxMarks
	}

	test := model.TestModel{
		TestSchoolID:       schoolID,
		TestClassSectionID: classSectionID,
		TestSubjectID:      subjectID,
		TestName:           strings.TrimSpace(req.Name),
		TestDate:           date,
		TestMaxMarks:       maxMarks,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&test).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to create test")
	}

	return helper.JsonCreated(c, "test created", toResponse(&test))
}

/* =========================================================
   GET /api/u/tests?class_section_id=&subject_id=
========================================================= */
func (ctrl *TestController) ListTests(c *fiber.Ctx) error {
	schoolID, err := helper.GetSchoolIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TestModel{}).
		Where("test_school_id = ?", schoolID)

	if s := strings.TrimSpace(c.Query("class_section_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_section_id is not a valid UUID")
		}
		q = q.Where("test_class_section_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("subject_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "subject_id is not a valid UUID")
		}
		q = q.Where("test_subject_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count tests")
	}

	var tests []model.TestModel
	if err := q.Order("test_date DESC, test_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&tests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch tests")
	}

	out := make([]dto.TestResponse, 0, len(tests))
	for i := range tests {
		out = append(out, toResponse(&tests[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func toResponse(t *model.TestModel) dto.TestResponse {
	return dto.TestResponse{
		TestID:         t.TestID.String(),
		ClassSectionID: t.TestClassSectionID.String(),
		SubjectID:      t.TestSubjectID.String(),
		Name:           t.TestName,
		Date:           helper.FormatDate(t.TestDate),
		MaxMarks:       t.TestMaxMarks,
	}
}
