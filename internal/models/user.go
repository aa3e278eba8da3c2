package models

// Role identifies what a logged-in user may do.
type Role string

const (
	RoleTeacher     Role = "TEACHER"
	RoleCoordinator Role = "COORDINATOR"
)

// ReadOnly reports whether the role may only view data.
func (r Role) ReadOnly() bool {
	return r == RoleCoordinator
}

// User is the session identity established at login.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
