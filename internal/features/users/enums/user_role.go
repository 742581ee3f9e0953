package users_enums

type UserRole string

const (
	UserRoleUser           UserRole = "USER"
	UserRoleModerator      UserRole = "MODERATOR"
	UserRoleSuperModerator UserRole = "SUPER_MODERATOR"
	UserRoleAdmin          UserRole = "ADMIN"
)

// IsValid validates the UserRole
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleModerator, UserRoleSuperModerator, UserRoleAdmin:
		return true
	default:
		return false
	}
}
