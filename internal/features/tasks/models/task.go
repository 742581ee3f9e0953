package tasks_models

import (
	"time"

	tasks_enums "trailiva-backend/internal/features/tasks/enums"

	"github.com/google/uuid"
)

// Task references its workspace by id only. CreatedAt and UpdatedAt are
// maintained by gorm.
type Task struct {
	ID          uuid.UUID            `json:"id"          gorm:"column:id;primaryKey;type:uuid"`
	Name        string               `json:"name"        gorm:"column:name"`
	Description string               `json:"description" gorm:"column:description"`
	Priority    tasks_enums.Priority `json:"priority"    gorm:"column:priority"`
	Tab         tasks_enums.Tab      `json:"tab"         gorm:"column:tab"`
	Tag         string               `json:"tag"         gorm:"column:tag"`
	DueDate     *time.Time           `json:"dueDate"     gorm:"column:due_date"`
	CreatedAt   time.Time            `json:"createdAt"   gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `json:"updatedAt"   gorm:"column:updated_at;autoUpdateTime"`
	WorkspaceID uuid.UUID            `json:"workspaceId" gorm:"column:workspace_id;type:uuid"`
	AssigneeID  *uuid.UUID           `json:"assigneeId"  gorm:"column:assignee_id;type:uuid"`
	ReporterID  *uuid.UUID           `json:"reporterId"  gorm:"column:reporter_id;type:uuid"`
	IsAssigned  bool                 `json:"isAssigned"  gorm:"column:is_assigned"`
	IsRequested bool                 `json:"isRequested" gorm:"column:is_requested"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) Assign(contributorID uuid.UUID, moderatorID uuid.UUID) {
	t.AssigneeID = &contributorID
	t.ReporterID = &moderatorID
	t.IsAssigned = true
}
