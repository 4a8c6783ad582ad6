package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Admin-only operations never list PRODUCER; lifecycle operations are open to
// both roles and further narrowed by the access gate's scope.
var PermissionRoles = map[string][]string{
	GenerateRings:     {Admin},
	AssignRings:       {Admin},
	ViewRingPool:      {Admin},
	ViewGlobalHistory: {Admin},
	ManageUsers:       {Admin},
	AssignOwnRings:    {Producer},
	ExitRooster:       {Admin, Producer},
	TransferRooster:   {Admin, Producer},
	ViewFlock:         {Admin, Producer},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
