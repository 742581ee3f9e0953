package projects

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"          gorm:"column:id;primaryKey;type:uuid"`
	Name        string    `json:"name"        gorm:"column:name"`
	Description string    `json:"description" gorm:"column:description"`
	WorkspaceID uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;type:uuid"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"column:created_at"`
}

func (Project) TableName() string {
	return "projects"
}
