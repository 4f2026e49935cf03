package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

var validate = validator.New()

func TestRecordAttendanceRequestValidation(t *testing.T) {
	const studentID = "0b2f1a38-6a51-4b4e-9a52-0f6f4f3f9c5a"

	tests := []struct {
		name    string
		req     RecordAttendanceRequest
		wantErr bool
	}{
		{
			"present without date",
			RecordAttendanceRequest{StudentID: studentID, Status: "present"},
			false,
		},
		{
			"late with explicit date",
			RecordAttendanceRequest{StudentID: studentID, Status: "late", Date: "2024-01-10"},
			false,
		},
		{
			"approved_leave with reason",
			RecordAttendanceRequest{StudentID: studentID, Status: "approved_leave", Reason: "medical"},
			false,
		},
		{
			"approved_leave missing reason",
			RecordAttendanceRequest{StudentID: studentID, Status: "approved_leave"},
			true,
		},
		{
			"unknown status",
			RecordAttendanceRequest{StudentID: studentID, Status: "half_day"},
			true,
		},
		{
			"bad date format",
			RecordAttendanceRequest{StudentID: studentID, Status: "present", Date: "10-01-2024"},
			true,
		},
		{
			"student id not a uuid",
			RecordAttendanceRequest{StudentID: "abc", Status: "present"},
			true,
		},
		{
			"missing student id",
			RecordAttendanceRequest{Status: "present"},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeleteAttendanceRequestValidation(t *testing.T) {
	const studentID = "0b2f1a38-6a51-4b4e-9a52-0f6f4f3f9c5a"

	assert.NoError(t, validate.Struct(DeleteAttendanceRequest{StudentID: studentID, Date: "2024-01-10"}))
	assert.Error(t, validate.Struct(DeleteAttendanceRequest{StudentID: studentID}))
	assert.Error(t, validate.Struct(DeleteAttendanceRequest{Date: "2024-01-10"}))
}
