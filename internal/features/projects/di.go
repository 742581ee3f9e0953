package projects

import (
	"sync"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/logger"
)

var (
	projectService    *ProjectService
	projectController *ProjectController
	projectsOnce      sync.Once
)

func initProjects() {
	projectService = NewProjectService(
		&GormProjectRepository{},
		workspaces_services.GetWorkspaceService(),
		workspaces_services.GetMembershipService(),
		audit_logs.GetAuditLogService(),
		logger.GetLogger(),
	)
	projectController = NewProjectController(projectService)
}

func GetProjectService() *ProjectService {
	projectsOnce.Do(initProjects)
	return projectService
}

func GetProjectController() *ProjectController {
	projectsOnce.Do(initProjects)
	return projectController
}

func SetupDependencies() {
	workspaces_services.GetWorkspaceService().AddWorkspaceDeletionListener(GetProjectService())
}
