package database

import (
	"log"

	batchModel "coachingku_backend/internals/features/academics/batches/model"
	classModel "coachingku_backend/internals/features/academics/class_sections/model"
	studentModel "coachingku_backend/internals/features/academics/students/model"
	subjectModel "coachingku_backend/internals/features/academics/subjects/model"
	testModel "coachingku_backend/internals/features/academics/tests/model"
	attendanceModel "coachingku_backend/internals/features/attendance/model"
	marksModel "coachingku_backend/internals/features/marks/model"
)

// Migrate keeps the schema in sync on boot. Directory tables first so the
// fact tables' reference columns always have something to point at.
func Migrate() {
	err := DB.AutoMigrate(
		&classModel.ClassSectionModel{},
		&studentModel.StudentModel{},
		&subjectModel.SubjectModel{},
		&batchModel.BatchModel{},
		&testModel.TestModel{},
		&attendanceModel.AttendanceDayModel{},
		&marksModel.MarkTestModel{},
	)
	if err != nil {
		log.Fatalf("[ERROR] migration failed: %v", err)
	}
	log.Println("[INFO] migration done.")
}
