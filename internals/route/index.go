package routes

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"coachingku_backend/internals/constants"
	databases "coachingku_backend/internals/databases"
	batchRoute "coachingku_backend/internals/features/academics/batches/route"
	batchService "coachingku_backend/internals/features/academics/batches/service"
	classSectionRoute "coachingku_backend/internals/features/academics/class_sections/route"
	studentRoute "coachingku_backend/internals/features/academics/students/route"
	subjectRoute "coachingku_backend/internals/features/academics/subjects/route"
	testRoute "coachingku_backend/internals/features/academics/tests/route"
	attendanceRoute "coachingku_backend/internals/features/attendance/route"
	marksRoute "coachingku_backend/internals/features/marks/route"
	authMiddleware "coachingku_backend/internals/middlewares/auth"
	featuresMiddleware "coachingku_backend/internals/middlewares/features"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	resolver := batchService.NewCachedBatchResolver(
		batchService.NewBatchResolver(db),
		databases.Redis,
	)

	authJWT := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	})

	// ===================== PRIVATE (USER) =====================
	// Any valid session scoped to a school: the read surface.
	user := app.Group("/api/u",
		authJWT,
		featuresMiddleware.RequireSchoolScope(),
	)
	attendanceRoute.AttendanceUserRoutes(user, db, resolver)
	marksRoute.MarksUserRoutes(user, db, resolver)
	testRoute.TestUserRoutes(user, db)
	studentRoute.StudentUserRoutes(user, db)
	classSectionRoute.ClassSectionUserRoutes(user, db)
	subjectRoute.SubjectUserRoutes(user, db)
	batchRoute.BatchUserRoutes(user, db)

	// ===================== ADMIN (per school) =====================
	// Mutations and exports: admins plus coaches. Coaches are further
	// narrowed per class section inside the controllers.
	admin := app.Group("/api/a",
		authJWT,
		featuresMiddleware.RequireSchoolScope(),
		featuresMiddleware.RequireRoles(constants.CoachAndAbove...),
	)
	attendanceRoute.AttendanceAdminRoutes(admin, db, resolver)
	marksRoute.MarksAdminRoutes(admin, db, resolver)
	testRoute.TestAdminRoutes(admin, db)
}
