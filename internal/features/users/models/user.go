package users_models

import (
	"slices"
	"time"

	users_enums "trailiva-backend/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id"        gorm:"column:id;primaryKey;type:uuid"`
	Name           string    `json:"name"      gorm:"column:name"`
	Email          string    `json:"email"     gorm:"column:email"`
	HashedPassword string    `json:"-"         gorm:"column:hashed_password"`
	IsEnabled      bool      `json:"isEnabled" gorm:"column:is_enabled"`
	CreatedAt      time.Time `json:"createdAt" gorm:"column:created_at"`

	// loaded from user_roles by the repository
	Roles []users_enums.UserRole `json:"roles" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HasRole(role users_enums.UserRole) bool {
	return slices.Contains(u.Roles, role)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(users_enums.UserRoleAdmin)
}

type UserRoleGrant struct {
	UserID    uuid.UUID            `gorm:"column:user_id;primaryKey;type:uuid"`
	Role      users_enums.UserRole `gorm:"column:role;primaryKey"`
	CreatedAt time.Time            `gorm:"column:created_at"`
}

func (UserRoleGrant) TableName() string {
	return "user_roles"
}
