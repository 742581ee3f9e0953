package workspaces_services

import (
	"fmt"
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
	ErrContributorNotFound = apperr.NotFound("contributor not found in this workspace")
	ErrModeratorNotFound   = apperr.NotFound("moderator not found in this workspace")
	ErrInvalidMemberRole   = apperr.BadRequest("invalid member role")
)

type MembershipService struct {
	membershipRepository workspaces_interfaces.MembershipRepository
	workspaceService     *WorkspaceService
	userService          *users_services.UserService
	auditLogService      *audit_logs.AuditLogService
}

func NewMembershipService(
	membershipRepository workspaces_interfaces.MembershipRepository,
	workspaceService *WorkspaceService,
	userService *users_services.UserService,
	auditLogService *audit_logs.AuditLogService,
) *MembershipService {
	return &MembershipService{membershipRepository, workspaceService, userService, auditLogService}
}

func (s *MembershipService) AddMember(
	workspaceID uuid.UUID,
	email string,
) (*workspaces_models.WorkspaceMembership, error) {
	return s.addWithRole(workspaceID, email, workspaces_enums.MemberRoleContributor)
}

// AddModerator additionally grants the global MODERATOR role. The grant is
// idempotent so moderating several workspaces keeps a single role entry.
func (s *MembershipService) AddModerator(
	workspaceID uuid.UUID,
	email string,
) (*workspaces_models.WorkspaceMembership, error) {
	return s.addWithRole(workspaceID, email, workspaces_enums.MemberRoleModerator)
}

// Onboard adds an already resolved user with the given role. It shares the
// duplicate checks of AddMember.
func (s *MembershipService) Onboard(
	workspaceID uuid.UUID,
	user *users_models.User,
	role workspaces_enums.MemberRole,
) (*workspaces_models.WorkspaceMembership, error) {
	if !role.IsValid() {
		return nil, ErrInvalidMemberRole
	}

	workspace, err := s.workspaceService.GetOfficialWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	return s.onboard(workspace, user, role)
}

func (s *MembershipService) addWithRole(
	workspaceID uuid.UUID,
	email string,
	role workspaces_enums.MemberRole,
) (*workspaces_models.WorkspaceMembership, error) {
	workspace, err := s.workspaceService.GetOfficialWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}

	return s.onboard(workspace, user, role)
}

func (s *MembershipService) onboard(
	workspace *workspaces_models.Workspace,
	user *users_models.User,
	role workspaces_enums.MemberRole,
) (*workspaces_models.WorkspaceMembership, error) {
	alreadyAdded := apperr.Conflict(
		fmt.Sprintf("user with email %s already added to this workspace", user.Email),
	)

	if user.ID == workspace.CreatorID {
		return nil, alreadyAdded
	}

	existing, err := s.membershipRepository.GetMembership(workspace.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	if existing != nil {
		return nil, alreadyAdded
	}

	// grant first so a failed grant leaves no membership; regranting is a no-op
	if role == workspaces_enums.MemberRoleModerator {
		if err := s.userService.GrantRole(user.ID, users_enums.UserRoleModerator); err != nil {
			return nil, fmt.Errorf("failed to grant moderator role: %w", err)
		}
	}

	membership := &workspaces_models.WorkspaceMembership{
		ID:          uuid.New(),
		WorkspaceID: workspace.ID,
		UserID:      user.ID,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, alreadyAdded
		}

		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User %s added to workspace as %s", user.Email, role),
		&user.ID,
		&workspace.ID,
	)

	return membership, nil
}

func (s *MembershipService) RemoveContributor(workspaceID uuid.UUID, userID uuid.UUID) error {
	return s.removeWithRole(workspaceID, userID, workspaces_enums.MemberRoleContributor)
}

func (s *MembershipService) RemoveModerator(workspaceID uuid.UUID, userID uuid.UUID) error {
	return s.removeWithRole(workspaceID, userID, workspaces_enums.MemberRoleModerator)
}

func (s *MembershipService) removeWithRole(
	workspaceID uuid.UUID,
	userID uuid.UUID,
	role workspaces_enums.MemberRole,
) error {
	if _, err := s.workspaceService.GetOfficialWorkspaceByID(workspaceID); err != nil {
		return err
	}

	removed, err := s.membershipRepository.RemoveMembership(workspaceID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	if !removed {
		if role == workspaces_enums.MemberRoleModerator {
			return ErrModeratorNotFound
		}

		return ErrContributorNotFound
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("%s removed from workspace", role),
		&userID,
		&workspaceID,
	)

	return nil
}

// GetMembers lists the creator, then contributors and moderators in join
// order.
func (s *MembershipService) GetMembers(
	workspaceID uuid.UUID,
) (*workspaces_dto.GetMembersResponseDTO, error) {
	workspace, err := s.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	creator, err := s.userService.GetUserByID(workspace.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace creator: %w", err)
	}

	memberships, err := s.membershipRepository.GetMemberships(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}

	response := &workspaces_dto.GetMembersResponseDTO{
		Creator: workspaces_dto.WorkspaceMemberResponseDTO{
			UserID:   creator.ID,
			Email:    creator.Email,
			Name:     creator.Name,
			JoinedAt: workspace.CreatedAt,
		},
		Contributors: []workspaces_dto.WorkspaceMemberResponseDTO{},
		Moderators:   []workspaces_dto.WorkspaceMemberResponseDTO{},
	}

	for _, membership := range memberships {
		user, err := s.userService.GetUserByID(membership.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get member: %w", err)
		}

		member := workspaces_dto.WorkspaceMemberResponseDTO{
			UserID:   user.ID,
			Email:    user.Email,
			Name:     user.Name,
			Role:     membership.Role,
			JoinedAt: membership.CreatedAt,
		}

		switch membership.Role {
		case workspaces_enums.MemberRoleModerator:
			response.Moderators = append(response.Moderators, member)
		case workspaces_enums.MemberRoleContributor:
			response.Contributors = append(response.Contributors, member)
		}
	}

	return response, nil
}

func (s *MembershipService) CountContributors(workspaceID uuid.UUID) (int64, error) {
	return s.countWithRole(workspaceID, workspaces_enums.MemberRoleContributor)
}

func (s *MembershipService) CountModerators(workspaceID uuid.UUID) (int64, error) {
	return s.countWithRole(workspaceID, workspaces_enums.MemberRoleModerator)
}

func (s *MembershipService) countWithRole(
	workspaceID uuid.UUID,
	role workspaces_enums.MemberRole,
) (int64, error) {
	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return 0, err
	}

	count, err := s.membershipRepository.CountByRole(workspaceID, role)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

func (s *MembershipService) IsContributor(workspaceID uuid.UUID, userID uuid.UUID) (bool, error) {
	return s.hasRole(workspaceID, userID, workspaces_enums.MemberRoleContributor)
}

func (s *MembershipService) IsModerator(workspaceID uuid.UUID, userID uuid.UUID) (bool, error) {
	return s.hasRole(workspaceID, userID, workspaces_enums.MemberRoleModerator)
}

func (s *MembershipService) hasRole(
	workspaceID uuid.UUID,
	userID uuid.UUID,
	role workspaces_enums.MemberRole,
) (bool, error) {
	membership, err := s.membershipRepository.GetMembership(workspaceID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership != nil && membership.Role == role, nil
}

// GetModerators returns the moderator users of a workspace in join order.
func (s *MembershipService) GetModerators(workspaceID uuid.UUID) ([]*users_models.User, error) {
	memberships, err := s.membershipRepository.GetMemberships(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace members: %w", err)
	}

	var moderators []*users_models.User
	for _, membership := range memberships {
		if membership.Role != workspaces_enums.MemberRoleModerator {
			continue
		}

		user, err := s.userService.GetUserByID(membership.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get moderator: %w", err)
		}

		moderators = append(moderators, user)
	}

	return moderators, nil
}

// AddMemberAs is AddMember or AddModerator performed on behalf of actor,
// who must be able to manage the workspace.
func (s *MembershipService) AddMemberAs(
	actor *users_models.User,
	workspaceID uuid.UUID,
	email string,
	role workspaces_enums.MemberRole,
) (*workspaces_models.WorkspaceMembership, error) {
	if err := s.ensureCanManage(actor, workspaceID); err != nil {
		return nil, err
	}

	switch role {
	case workspaces_enums.MemberRoleContributor:
		return s.AddMember(workspaceID, email)
	case workspaces_enums.MemberRoleModerator:
		return s.AddModerator(workspaceID, email)
	default:
		return nil, ErrInvalidMemberRole
	}
}

func (s *MembershipService) RemoveMemberAs(
	actor *users_models.User,
	workspaceID uuid.UUID,
	userID uuid.UUID,
	role workspaces_enums.MemberRole,
) error {
	if err := s.ensureCanManage(actor, workspaceID); err != nil {
		return err
	}

	switch role {
	case workspaces_enums.MemberRoleContributor:
		return s.RemoveContributor(workspaceID, userID)
	case workspaces_enums.MemberRoleModerator:
		return s.RemoveModerator(workspaceID, userID)
	default:
		return ErrInvalidMemberRole
	}
}

func (s *MembershipService) GetMembersAs(
	actor *users_models.User,
	workspaceID uuid.UUID,
) (*workspaces_dto.GetMembersResponseDTO, error) {
	if _, err := s.workspaceService.GetWorkspace(workspaceID, actor); err != nil {
		return nil, err
	}

	return s.GetMembers(workspaceID)
}

func (s *MembershipService) ensureCanManage(actor *users_models.User, workspaceID uuid.UUID) error {
	workspace, err := s.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		return err
	}

	if !s.workspaceService.CanUserManageWorkspace(workspace, actor) {
		return ErrNotAllowedToManage
	}

	return nil
}
