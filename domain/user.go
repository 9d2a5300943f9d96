package domain

// Role is the workspace-wide permission level of a user.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// User represents an authenticated identity in the workspace.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) IsOwner() bool {
	return u != nil && u.Role == RoleOwner
}
