package policy

// Role is the closed set of user roles. The DB stores it as a string, parse
// with ParseRole before making any decision so unknown values degrade to the
// weakest role instead of silently matching nothing.
type Role int

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdmin
)

func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "moderator":
		return RoleModerator
	default:
		return RoleUser
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleModerator:
		return "moderator"
	default:
		return "user"
	}
}

// Valid reports whether s names one of the three known roles.
func Valid(s string) bool {
	switch s {
	case "user", "moderator", "admin":
		return true
	}
	return false
}

// CanWriteCatalog gates create/update/delete on categories, genres and titles.
// Reads are public and never reach a policy check.
func CanWriteCatalog(r Role) bool {
	return r == RoleAdmin
}

// CanModifyAuthored gates update/delete on a review or comment that was
// already loaded. Object-level: the author always may, moderators and admins
// may moderate anyone's content.
func CanModifyAuthored(r Role, callerID, authorID string) bool {
	switch r {
	case RoleAdmin, RoleModerator:
		return true
	case RoleUser:
		return callerID != "" && callerID == authorID
	}
	return false
}

// CanManageUsers gates the /users collection. /users/me is handled separately,
// any authenticated caller owns their profile.
func CanManageUsers(r Role) bool {
	return r == RoleAdmin
}

// CanChangeRole reports whether the caller may set the role field on a
// profile update. Non-admins editing /users/me keep their current role.
func CanChangeRole(r Role) bool {
	return r == RoleAdmin
}
