package tasks_dto

import (
	"time"

	tasks_enums "trailiva-backend/internal/features/tasks/enums"
	tasks_models "trailiva-backend/internal/features/tasks/models"

	"github.com/google/uuid"
)

// TaskRequestDTO is used for both creation and full updates. Empty priority
// and tab fall back to MEDIUM and PENDING on creation.
type TaskRequestDTO struct {
	Name        string               `json:"name"        binding:"required,min=1,max=255"`
	Description string               `json:"description"`
	Priority    tasks_enums.Priority `json:"priority"`
	Tab         tasks_enums.Tab      `json:"tab"`
	Tag         string               `json:"tag"`
	DueDate     *time.Time           `json:"dueDate"`
}

type UpdateTaskTagRequestDTO struct {
	Tag string `json:"tag"`
}

type AssignTaskRequestDTO struct {
	ContributorID uuid.UUID `json:"contributorId" binding:"required"`
}

type FilterTasksQueryDTO struct {
	Priority tasks_enums.Priority `form:"priority"`
	Tab      tasks_enums.Tab      `form:"tab"`
}

type TaskResponseDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Priority    tasks_enums.Priority `json:"priority"`
	Tab         tasks_enums.Tab      `json:"tab"`
	Tag         string               `json:"tag"`
	DueDate     *time.Time           `json:"dueDate"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	WorkspaceID uuid.UUID            `json:"workspaceId"`
	AssigneeID  *uuid.UUID           `json:"assigneeId"`
	ReporterID  *uuid.UUID           `json:"reporterId"`
	IsAssigned  bool                 `json:"isAssigned"`
	IsRequested bool                 `json:"isRequested"`
}

func ToTask(workspaceID uuid.UUID, request *TaskRequestDTO) *tasks_models.Task {
	return &tasks_models.Task{
		Name:        request.Name,
		Description: request.Description,
		Priority:    request.Priority,
		Tab:         request.Tab,
		Tag:         request.Tag,
		DueDate:     request.DueDate,
		WorkspaceID: workspaceID,
	}
}

func ToTaskResponseDTO(task tasks_models.Task) TaskResponseDTO {
	return TaskResponseDTO{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Priority:    task.Priority,
		Tab:         task.Tab,
		Tag:         task.Tag,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		WorkspaceID: task.WorkspaceID,
		AssigneeID:  task.AssigneeID,
		ReporterID:  task.ReporterID,
		IsAssigned:  task.IsAssigned,
		IsRequested: task.IsRequested,
	}
}

func ToTaskResponseDTOs(tasks tasks_models.TaskList) []TaskResponseDTO {
	response := make([]TaskResponseDTO, 0, tasks.Len())
	for task := range tasks.All() {
		response = append(response, ToTaskResponseDTO(task))
	}

	return response
}
