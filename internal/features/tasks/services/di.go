package tasks_services

import (
	"sync"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	tasks_repositories "trailiva-backend/internal/features/tasks/repositories"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/logger"
)

var (
	taskService *TaskService
	serviceOnce sync.Once
)

func GetTaskService() *TaskService {
	serviceOnce.Do(func() {
		taskService = NewTaskService(
			&tasks_repositories.TaskRepository{},
			workspaces_services.GetWorkspaceService(),
			workspaces_services.GetMembershipService(),
			audit_logs.GetAuditLogService(),
			logger.GetLogger(),
		)
	})

	return taskService
}

func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(GetTaskService())
}
