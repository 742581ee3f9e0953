package tasks_testing

import (
	"fmt"
	"log/slog"

	tasks_dto "trailiva-backend/internal/features/tasks/dto"
	tasks_enums "trailiva-backend/internal/features/tasks/enums"
	tasks_models "trailiva-backend/internal/features/tasks/models"
	tasks_services "trailiva-backend/internal/features/tasks/services"
	users_models "trailiva-backend/internal/features/users/models"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	workspaces_testing "trailiva-backend/internal/features/workspaces/testing"
)

// TestServices extends the workspace test wiring with the task feature.
type TestServices struct {
	*workspaces_testing.TestServices
	TaskRepository *InMemoryTaskRepository
	TaskService    *tasks_services.TaskService
}

func NewTestServices() *TestServices {
	services := workspaces_testing.NewTestServices()
	taskRepository := NewInMemoryTaskRepository()

	taskService := tasks_services.NewTaskService(
		taskRepository,
		services.WorkspaceService,
		services.MembershipService,
		services.AuditLogService,
		slog.New(slog.DiscardHandler),
	)
	services.WorkspaceService.AddWorkspaceDeletionListener(taskService)

	return &TestServices{
		TestServices:   services,
		TaskRepository: taskRepository,
		TaskService:    taskService,
	}
}

func CreateTestTask(
	services *TestServices,
	workspace *workspaces_models.Workspace,
	creator *users_models.User,
	name string,
	priority tasks_enums.Priority,
	tab tasks_enums.Tab,
) *tasks_models.Task {
	task, err := services.TaskService.CreateTask(
		workspace.ID,
		&tasks_dto.TaskRequestDTO{Name: name, Priority: priority, Tab: tab},
		creator,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create task %s: %v", name, err))
	}

	return task
}
