package dto

type CreateTestRequest struct {
	ClassSectionID string   `json:"class_section_id" validate:"required,uuid"`
	SubjectID      string   `json:"subject_id" validate:"required,uuid"`
	Name           string   `json:"name" validate:"required"`
	Date           string   `json:"date" validate:"required,datetime=2006-01-02"`
	MaxMarks       *float64 `json:"max_marks,omitempty" validate:"omitempty,gt=0"`
}

type TestResponse struct {
	TestID         string  `json:"test_id"`
	ClassSectionID string  `json:"class_section_id"`
	SubjectID      string  `json:"subject_id"`
	Name           string  `json:"name"`
	Date           string  `json:"date"`
	MaxMarks       float64 `json:"max_marks"`
}
