package domain

// TeamMember is an entry of the global member directory. It is distinct from
// MemberRef, which scopes a member to one project and may be partially
// hydrated.
type TeamMember struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// CanRemove encodes the directory policy the UI enforces before dispatching
// a delete: only owners remove members, and never themselves. The server
// applies the same policy; a rejection from it is propagated as a normal
// error because permissions can change between render and dispatch.
func CanRemove(actor *User, member TeamMember) bool {
	if actor == nil || !actor.IsOwner() {
		return false
	}
	return actor.ID != member.ID
}
