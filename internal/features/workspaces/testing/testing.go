package workspaces_testing

import (
	"fmt"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	users_middleware "trailiva-backend/internal/features/users/middleware"
	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"
	users_testing "trailiva-backend/internal/features/users/testing"
	workspaces_dto "trailiva-backend/internal/features/workspaces/dto"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"

	"github.com/gin-gonic/gin"
)

// TestServices wires the workspace feature on top of in-memory repositories.
type TestServices struct {
	UserRepository       *users_testing.InMemoryUserRepository
	UserService          *users_services.UserService
	AuditLogService      *audit_logs.AuditLogService
	AuditLogRepository   *audit_logs.InMemoryAuditLogRepository
	WorkspaceRepository  *InMemoryWorkspaceRepository
	MembershipRepository *InMemoryMembershipRepository
	WorkspaceService     *workspaces_services.WorkspaceService
	MembershipService    *workspaces_services.MembershipService
}

func NewTestServices() *TestServices {
	userRepository := users_testing.NewInMemoryUserRepository()
	userService := users_testing.NewTestUserService(userRepository)
	auditLogService, auditLogRepository := audit_logs.NewTestAuditLogService()
	userService.SetAuditLogWriter(auditLogService)

	workspaceRepository := NewInMemoryWorkspaceRepository()
	membershipRepository := NewInMemoryMembershipRepository()

	workspaceService := workspaces_services.NewWorkspaceService(
		workspaceRepository,
		membershipRepository,
		userService,
		auditLogService,
	)

	membershipService := workspaces_services.NewMembershipService(
		membershipRepository,
		workspaceService,
		userService,
		auditLogService,
	)

	return &TestServices{
		UserRepository:       userRepository,
		UserService:          userService,
		AuditLogService:      auditLogService,
		AuditLogRepository:   auditLogRepository,
		WorkspaceRepository:  workspaceRepository,
		MembershipRepository: membershipRepository,
		WorkspaceService:     workspaceService,
		MembershipService:    membershipService,
	}
}

func CreateTestRouter(
	userService *users_services.UserService,
	controllers ...ControllerInterface,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/api/v1")
	protected.Use(users_middleware.AuthMiddleware(userService))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

func CreateTestOfficialWorkspace(
	services *TestServices,
	name string,
	creator *users_models.User,
) *workspaces_models.Workspace {
	workspace, err := services.WorkspaceService.CreateOfficialWorkspace(
		&workspaces_dto.CreateWorkspaceRequestDTO{Name: name},
		creator,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create official workspace %s: %v", name, err))
	}

	return workspace
}

func CreateTestPersonalWorkspace(
	services *TestServices,
	name string,
	creator *users_models.User,
) *workspaces_models.Workspace {
	workspace, err := services.WorkspaceService.CreatePersonalWorkspace(
		&workspaces_dto.CreateWorkspaceRequestDTO{Name: name},
		creator,
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create personal workspace %s: %v", name, err))
	}

	return workspace
}

func AddTestContributor(
	services *TestServices,
	workspace *workspaces_models.Workspace,
	user *users_models.User,
) {
	if _, err := services.MembershipService.AddMember(workspace.ID, user.Email); err != nil {
		panic(fmt.Sprintf("failed to add contributor %s: %v", user.Email, err))
	}
}

func AddTestModerator(
	services *TestServices,
	workspace *workspaces_models.Workspace,
	user *users_models.User,
) {
	if _, err := services.MembershipService.AddModerator(workspace.ID, user.Email); err != nil {
		panic(fmt.Sprintf("failed to add moderator %s: %v", user.Email, err))
	}
}
