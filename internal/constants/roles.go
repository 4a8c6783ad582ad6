package constants

const (
	Admin    = "ADMIN"
	Producer = "PRODUCER"
)

// ValidRoles is the set of allowed profile role values (must match the profiles role column).
var ValidRoles = []string{Admin, Producer}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
