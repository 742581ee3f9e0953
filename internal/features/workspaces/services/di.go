package workspaces_services

import (
	"sync"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	users_services "trailiva-backend/internal/features/users/services"
	workspaces_repositories "trailiva-backend/internal/features/workspaces/repositories"
)

var (
	workspaceService  *WorkspaceService
	membershipService *MembershipService
	servicesOnce      sync.Once
)

func initServices() {
	membershipRepository := &workspaces_repositories.MembershipRepository{}

	workspaceService = NewWorkspaceService(
		&workspaces_repositories.WorkspaceRepository{},
		membershipRepository,
		users_services.GetUserService(),
		audit_logs.GetAuditLogService(),
	)

	membershipService = NewMembershipService(
		membershipRepository,
		workspaceService,
		users_services.GetUserService(),
		audit_logs.GetAuditLogService(),
	)
}

func GetWorkspaceService() *WorkspaceService {
	servicesOnce.Do(initServices)
	return workspaceService
}

func GetMembershipService() *MembershipService {
	servicesOnce.Do(initServices)
	return membershipService
}
