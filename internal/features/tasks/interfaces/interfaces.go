package tasks_interfaces

import (
	tasks_models "trailiva-backend/internal/features/tasks/models"

	"github.com/google/uuid"
)

// TaskRepository returns (nil, nil) from GetTaskByID when the task does not
// exist. GetTasksByWorkspaceID orders by creation time, then id.
type TaskRepository interface {
	CreateTask(task *tasks_models.Task) error
	GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error)
	GetTasksByWorkspaceID(workspaceID uuid.UUID) ([]*tasks_models.Task, error)
	UpdateTask(task *tasks_models.Task) error
	DeleteTask(taskID uuid.UUID) error
	DeleteTasksByWorkspaceID(workspaceID uuid.UUID) error
}
