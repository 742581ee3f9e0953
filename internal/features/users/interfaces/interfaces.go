package users_interfaces

import (
	users_enums "trailiva-backend/internal/features/users/enums"
	users_models "trailiva-backend/internal/features/users/models"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}

// VerificationIssuer sends a newly signed-up user the token that enables
// the account.
type VerificationIssuer interface {
	IssueUserVerification(user *users_models.User) error
}

// UserRepository lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	CreateUser(user *users_models.User) error
	GetUserByID(userID uuid.UUID) (*users_models.User, error)
	GetUserByEmail(email string) (*users_models.User, error)
	UpdateUserPassword(userID uuid.UUID, hashedPassword string) error
	DeleteUser(userID uuid.UUID) error
	SetUserEnabled(userID uuid.UUID, isEnabled bool) error

	// AddUserRole is a set insertion: granting a role twice keeps one grant.
	AddUserRole(userID uuid.UUID, role users_enums.UserRole) error
}
