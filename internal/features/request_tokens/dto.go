package request_tokens

import (
	"time"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

type InviteRequestDTO struct {
	Emails []string                    `json:"emails" binding:"required,min=1"`
	Role   workspaces_enums.MemberRole `json:"role"`
}

type RedeemTokenRequestDTO struct {
	Token string `json:"token" binding:"required"`
}

type ResendVerificationRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

type InvitationFailureDTO struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// InvitationResultDTO reports every email of a bulk invite: either a token
// was issued or the reason it was not.
type InvitationResultDTO struct {
	Invited []string               `json:"invited"`
	Failed  []InvitationFailureDTO `json:"failed"`
}

type TaskRequestResponseDTO struct {
	TaskID    uuid.UUID `json:"taskId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
