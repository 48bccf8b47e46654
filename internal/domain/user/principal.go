package user

const RoleAdmin = "admin"

// Principal is the authenticated caller attached to a request context
// after token introspection.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
