package workspaces_controllers

import (
	"sync"

	workspaces_services "trailiva-backend/internal/features/workspaces/services"
)

var (
	workspaceController  *WorkspaceController
	membershipController *MembershipController
	controllersOnce      sync.Once
)

func initControllers() {
	workspaceController = NewWorkspaceController(workspaces_services.GetWorkspaceService())
	membershipController = NewMembershipController(workspaces_services.GetMembershipService())
}

func GetWorkspaceController() *WorkspaceController {
	controllersOnce.Do(initControllers)
	return workspaceController
}

func GetMembershipController() *MembershipController {
	controllersOnce.Do(initControllers)
	return membershipController
}
