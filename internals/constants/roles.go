package constants

// Role names as stored in the JWT "role" claim.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleCoach   = "coach"
	RoleStudent = "student"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleCoach,
		RoleStudent,
	}

	// CoachAndAbove may hit the management surface; coaches are further
	// restricted per class section by the controllers.
	CoachAndAbove = []string{
		RoleCoach,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}
)
