package request_tokens

import (
	"time"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

type TokenType string

const (
	TokenTypeWorkspaceRequest TokenType = "WORKSPACE_REQUEST"
	TokenTypeTaskRequest      TokenType = "TASK_REQUEST"
	TokenTypeUserVerification TokenType = "USER_VERIFICATION"
)

func (t TokenType) IsValid() bool {
	switch t {
	case TokenTypeWorkspaceRequest, TokenTypeTaskRequest, TokenTypeUserVerification:
		return true
	default:
		return false
	}
}

// RequestToken is a single-use credential. UserID is the invitee for
// workspace tokens, the requesting contributor for task tokens and the
// signed-up user for verification tokens.
type RequestToken struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id;primaryKey;type:uuid"`
	Token       string                       `json:"-"           gorm:"column:token"`
	UserID      uuid.UUID                    `json:"userId"      gorm:"column:user_id;type:uuid"`
	TokenType   TokenType                    `json:"tokenType"   gorm:"column:token_type"`
	MemberRole  *workspaces_enums.MemberRole `json:"memberRole"  gorm:"column:member_role"`
	WorkspaceID *uuid.UUID                   `json:"workspaceId" gorm:"column:workspace_id;type:uuid"`
	TaskID      *uuid.UUID                   `json:"taskId"      gorm:"column:task_id;type:uuid"`
	ExpiresAt   time.Time                    `json:"expiresAt"   gorm:"column:expires_at"`
	CreatedAt   time.Time                    `json:"createdAt"   gorm:"column:created_at"`
}

func (RequestToken) TableName() string {
	return "request_tokens"
}

// IsExpired holds strictly after the expiry instant; a token redeemed at
// exactly ExpiresAt is still valid.
func (t *RequestToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
