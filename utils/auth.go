package utils

import "slices"

// Permission levels
const (
	SuperAdminPermission = "super_admin"
	DeveloperPermission  = "developer"
	AdminPermission      = "admin"
	UserPermission       = "user"
	GuestPermission      = "guest"
)

func hasAny(held, wanted []string) bool {
	for _, id := range held {
		if slices.Contains(wanted, id) {
			return true
		}
	}
	return false
}

// CheckPermission returns the highest permission level the member holds.
func CheckPermission(userRoleIDs []string, userID string, adminRoleIDs, userRoleIDsConfig, developerUserIDs, superAdminRoleIDs []string) string {
	switch {
	case slices.Contains(developerUserIDs, userID):
		return DeveloperPermission
	case hasAny(userRoleIDs, superAdminRoleIDs):
		return SuperAdminPermission
	case hasAny(userRoleIDs, adminRoleIDs):
		return AdminPermission
	case hasAny(userRoleIDs, userRoleIDsConfig):
		return UserPermission
	default:
		return GuestPermission
	}
}

// IsAdminLevel reports whether level may manage guild leveling data.
func IsAdminLevel(level string) bool {
	return level == AdminPermission || level == SuperAdminPermission || level == DeveloperPermission
}
