package entity

// Role is the authorization role stored on a user.
type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RolePublisher, RoleAdmin:
		return true
	}
	return false
}

// Principal is the identity resolved from a verified session token.
type Principal struct {
	ID   string
	Role Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Owns reports whether the principal may act on a record owned by ownerID.
func (p Principal) Owns(ownerID string) bool { return p.ID == ownerID || p.IsAdmin() }
