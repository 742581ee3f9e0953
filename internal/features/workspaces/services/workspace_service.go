package workspaces_services

import (
	"fmt"
	"strings"
	"time"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	users_enums "trailiva-backend/internal/features/users/enums"
	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"
	workspaces_dto "trailiva-backend/internal/features/workspaces/dto"
	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_interfaces "trailiva-backend/internal/features/workspaces/interfaces"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	"trailiva-backend/internal/storage"
	"trailiva-backend/internal/util/apperr"

	"github.com/google/uuid"
)

var (
	ErrWorkspaceNotFound         = apperr.NotFound("workspace not found")
	ErrWorkspaceNameTaken        = apperr.Conflict("workspace with name already exists")
	ErrWorkspaceNameTooShort     = apperr.BadRequest("workspace name must have at least two characters")
	ErrPersonalWorkspaceExists   = apperr.Conflict("user already has a personal workspace")
	ErrOfficialWorkspaceExists   = apperr.Conflict("user already has an official workspace")
	ErrNotAllowedToViewWorkspace = apperr.Unauthorized("insufficient permissions to view workspace")
	ErrNotAllowedToManage        = apperr.Unauthorized("only the workspace creator or an admin can manage this workspace")
	ErrAdminOnly                 = apperr.Unauthorized("only admins can list all workspaces")
)

type WorkspaceService struct {
	workspaceRepository        workspaces_interfaces.WorkspaceRepository
	membershipRepository       workspaces_interfaces.MembershipRepository
	userService                *users_services.UserService
	auditLogService            *audit_logs.AuditLogService
	workspaceDeletionListeners []workspaces_interfaces.WorkspaceDeletionListener
}

func NewWorkspaceService(
	workspaceRepository workspaces_interfaces.WorkspaceRepository,
	membershipRepository workspaces_interfaces.MembershipRepository,
	userService *users_services.UserService,
	auditLogService *audit_logs.AuditLogService,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepository,
		membershipRepository,
		userService,
		auditLogService,
		[]workspaces_interfaces.WorkspaceDeletionListener{},
	}
}

func (s *WorkspaceService) AddWorkspaceDeletionListener(
	listener workspaces_interfaces.WorkspaceDeletionListener,
) {
	s.workspaceDeletionListeners = append(s.workspaceDeletionListeners, listener)
}

func (s *WorkspaceService) CreatePersonalWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_models.Workspace, error) {
	return s.createWorkspace(request, creator, workspaces_enums.WorkspaceKindPersonal)
}

// CreateOfficialWorkspace also grants the creator the global SUPER_MODERATOR
// role.
func (s *WorkspaceService) CreateOfficialWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.createWorkspace(request, creator, workspaces_enums.WorkspaceKindOfficial)
	if err != nil {
		return nil, err
	}

	if err := s.userService.GrantRole(creator.ID, users_enums.UserRoleSuperModerator); err != nil {
		return nil, fmt.Errorf("failed to grant super moderator role: %w", err)
	}

	return workspace, nil
}

func (s *WorkspaceService) createWorkspace(
	request *workspaces_dto.CreateWorkspaceRequestDTO,
	creator *users_models.User,
	kind workspaces_enums.WorkspaceKind,
) (*workspaces_models.Workspace, error) {
	name := strings.TrimSpace(request.Name)
	if workspaces_models.ReferenceNameOf(name) == "" {
		return nil, ErrWorkspaceNameTooShort
	}

	if err := s.ensureNameIsFree(name, uuid.Nil); err != nil {
		return nil, err
	}

	existing, err := s.workspaceRepository.GetWorkspaceByCreatorAndKind(creator.ID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing workspace: %w", err)
	}

	if existing != nil {
		if kind == workspaces_enums.WorkspaceKindOfficial {
			return nil, ErrOfficialWorkspaceExists
		}

		return nil, ErrPersonalWorkspaceExists
	}

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Kind:      kind,
		CreatorID: creator.ID,
		CreatedAt: time.Now().UTC(),
	}
	workspace.Rename(name)

	if err := s.workspaceRepository.CreateWorkspace(workspace); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrWorkspaceNameTaken
		}

		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace created: %s (%s)", workspace.Name, workspace.Kind),
		&creator.ID,
		&workspace.ID,
	)

	return workspace, nil
}

// GetWorkspaceByID loads a workspace without access checks.
func (s *WorkspaceService) GetWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

// GetOfficialWorkspaceByID loads a workspace that can hold members.
// Personal workspaces are reported as missing.
func (s *WorkspaceService) GetOfficialWorkspaceByID(
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	if !workspace.IsOfficial() {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

func (s *WorkspaceService) GetWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	canView, err := s.CanUserAccessWorkspace(workspace, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, ErrNotAllowedToViewWorkspace
	}

	return workspace, nil
}

func (s *WorkspaceService) GetUserPersonalWorkspace(
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	return s.getUserWorkspaceOfKind(user, workspaces_enums.WorkspaceKindPersonal)
}

func (s *WorkspaceService) GetUserOfficialWorkspace(
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	return s.getUserWorkspaceOfKind(user, workspaces_enums.WorkspaceKindOfficial)
}

func (s *WorkspaceService) getUserWorkspaceOfKind(
	user *users_models.User,
	kind workspaces_enums.WorkspaceKind,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceRepository.GetWorkspaceByCreatorAndKind(user.ID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	return workspace, nil
}

func (s *WorkspaceService) ListPersonalWorkspaces(
	user *users_models.User,
) ([]*workspaces_models.Workspace, error) {
	return s.listWorkspacesOfKind(user, workspaces_enums.WorkspaceKindPersonal)
}

func (s *WorkspaceService) ListOfficialWorkspaces(
	user *users_models.User,
) ([]*workspaces_models.Workspace, error) {
	return s.listWorkspacesOfKind(user, workspaces_enums.WorkspaceKindOfficial)
}

func (s *WorkspaceService) listWorkspacesOfKind(
	user *users_models.User,
	kind workspaces_enums.WorkspaceKind,
) ([]*workspaces_models.Workspace, error) {
	if !user.IsAdmin() {
		return nil, ErrAdminOnly
	}

	workspaces, err := s.workspaceRepository.GetWorkspacesByKind(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	return workspaces, nil
}

// GetUserWorkspaces returns the workspaces the user created followed by the
// ones they joined.
func (s *WorkspaceService) GetUserWorkspaces(
	user *users_models.User,
) (*workspaces_dto.ListWorkspacesResponseDTO, error) {
	created, err := s.workspaceRepository.GetWorkspacesByCreator(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get created workspaces: %w", err)
	}

	memberships, err := s.membershipRepository.GetMembershipsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user memberships: %w", err)
	}

	rolesByWorkspace := make(map[uuid.UUID]workspaces_enums.MemberRole, len(memberships))
	workspaceIDs := make([]uuid.UUID, 0, len(memberships))
	for _, membership := range memberships {
		rolesByWorkspace[membership.WorkspaceID] = membership.Role
		workspaceIDs = append(workspaceIDs, membership.WorkspaceID)
	}

	joined, err := s.workspaceRepository.GetWorkspacesByIDs(workspaceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get joined workspaces: %w", err)
	}

	response := &workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: make([]workspaces_dto.WorkspaceResponseDTO, 0, len(created)+len(joined)),
	}

	for _, workspace := range created {
		dto := workspaces_dto.ToWorkspaceResponseDTO(workspace)
		dto.IsCreator = true
		response.Workspaces = append(response.Workspaces, dto)
	}

	for _, workspace := range joined {
		role := rolesByWorkspace[workspace.ID]
		dto := workspaces_dto.ToWorkspaceResponseDTO(workspace)
		dto.MemberRole = &role
		response.Workspaces = append(response.Workspaces, dto)
	}

	return response, nil
}

func (s *WorkspaceService) UpdateWorkspace(
	workspaceID uuid.UUID,
	request *workspaces_dto.UpdateWorkspaceRequestDTO,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	if !s.CanUserManageWorkspace(workspace, user) {
		return nil, ErrNotAllowedToManage
	}

	name := strings.TrimSpace(request.Name)
	if workspaces_models.ReferenceNameOf(name) == "" {
		return nil, ErrWorkspaceNameTooShort
	}

	if err := s.ensureNameIsFree(name, workspace.ID); err != nil {
		return nil, err
	}

	oldName := workspace.Name
	workspace.Rename(name)

	if err := s.workspaceRepository.UpdateWorkspace(workspace); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrWorkspaceNameTaken
		}

		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace renamed from %s to %s", oldName, workspace.Name),
		&user.ID,
		&workspace.ID,
	)

	return workspace, nil
}

// DeleteWorkspace runs the deletion listeners first so dependent records
// (projects, tasks, tokens) are gone before the workspace row.
func (s *WorkspaceService) DeleteWorkspace(workspaceID uuid.UUID, user *users_models.User) error {
	workspace, err := s.GetWorkspaceByID(workspaceID)
	if err != nil {
		return err
	}

	if !s.CanUserManageWorkspace(workspace, user) {
		return ErrNotAllowedToManage
	}

	for _, listener := range s.workspaceDeletionListeners {
		if err := listener.OnBeforeWorkspaceDeletion(workspaceID); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
	}

	if err := s.membershipRepository.DeleteByWorkspace(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace memberships: %w", err)
	}

	if err := s.workspaceRepository.DeleteWorkspace(workspaceID); err != nil {
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Workspace deleted: %s", workspace.Name),
		&user.ID,
		nil,
	)

	return nil
}

// CanUserAccessWorkspace holds for the creator, any member and admins.
func (s *WorkspaceService) CanUserAccessWorkspace(
	workspace *workspaces_models.Workspace,
	user *users_models.User,
) (bool, error) {
	if s.CanUserManageWorkspace(workspace, user) {
		return true, nil
	}

	membership, err := s.membershipRepository.GetMembership(workspace.ID, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership != nil, nil
}

func (s *WorkspaceService) CanUserManageWorkspace(
	workspace *workspaces_models.Workspace,
	user *users_models.User,
) bool {
	return user.IsAdmin() || workspace.CreatorID == user.ID
}

func (s *WorkspaceService) GetWorkspaceAuditLogs(
	workspaceID uuid.UUID,
	user *users_models.User,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	if _, err := s.GetWorkspace(workspaceID, user); err != nil {
		return nil, err
	}

	return s.auditLogService.GetWorkspaceAuditLogs(workspaceID, request)
}

func (s *WorkspaceService) ensureNameIsFree(name string, exceptWorkspaceID uuid.UUID) error {
	existing, err := s.workspaceRepository.GetWorkspaceByName(name)
	if err != nil {
		return fmt.Errorf("failed to check workspace name: %w", err)
	}

	if existing != nil && existing.ID != exceptWorkspaceID {
		return ErrWorkspaceNameTaken
	}

	return nil
}
