package workspaces_models

import (
	"time"

	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"

	"github.com/google/uuid"
)

type WorkspaceMembership struct {
	ID          uuid.UUID                   `json:"id"          gorm:"column:id;primaryKey;type:uuid"`
	WorkspaceID uuid.UUID                   `json:"workspaceId" gorm:"column:workspace_id;type:uuid"`
	UserID      uuid.UUID                   `json:"userId"      gorm:"column:user_id;type:uuid"`
	Role        workspaces_enums.MemberRole `json:"role"        gorm:"column:role"`
	CreatedAt   time.Time                   `json:"createdAt"   gorm:"column:created_at"`
}

func (WorkspaceMembership) TableName() string {
	return "workspace_memberships"
}
