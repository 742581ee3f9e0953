package projects

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	users_models "trailiva-backend/internal/features/users/models"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/storage"
	"trailiva-backend/internal/util/apperr"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound          = apperr.NotFound("project not found")
	ErrProjectNameTaken         = apperr.Conflict("project with this name already exists in the workspace")
	ErrProjectNameRequired      = apperr.BadRequest("project name is required")
	ErrNotAllowedToModify       = apperr.Unauthorized("insufficient permissions to modify projects of this workspace")
	ErrNotAllowedToViewProjects = apperr.Unauthorized("insufficient permissions to view projects of this workspace")
)

type ProjectService struct {
	projectRepository ProjectRepository
	workspaceService  *workspaces_services.WorkspaceService
	membershipService *workspaces_services.MembershipService
	auditLogService   *audit_logs.AuditLogService
	logger            *slog.Logger
}

func NewProjectService(
	projectRepository ProjectRepository,
	workspaceService *workspaces_services.WorkspaceService,
	membershipService *workspaces_services.MembershipService,
	auditLogService *audit_logs.AuditLogService,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepository,
		workspaceService,
		membershipService,
		auditLogService,
		logger,
	}
}

func (s *ProjectService) CreateProject(
	workspaceID uuid.UUID,
	request *ProjectRequestDTO,
	user *users_models.User,
) (*Project, error) {
	workspace, err := s.workspaceForModification(workspaceID, user)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	if err := s.ensureNameIsFree(workspaceID, name, uuid.Nil); err != nil {
		return nil, err
	}

	project := &Project{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(request.Description),
		WorkspaceID: workspaceID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.Save(project); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrProjectNameTaken
		}

		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s in workspace %s", project.Name, workspace.Name),
		&user.ID,
		&workspaceID,
	)

	return project, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *ProjectRequestDTO,
	user *users_models.User,
) (*Project, error) {
	project, err := s.getProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaceForModification(project.WorkspaceID, user); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	if err := s.ensureNameIsFree(project.WorkspaceID, name, project.ID); err != nil {
		return nil, err
	}

	oldName := project.Name
	project.Name = name
	project.Description = strings.TrimSpace(request.Description)

	if err := s.projectRepository.Save(project); err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, ErrProjectNameTaken
		}

		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if oldName != project.Name {
		s.auditLogService.WriteAuditLog(
			fmt.Sprintf("Project renamed from %s to %s", oldName, project.Name),
			&user.ID,
			&project.WorkspaceID,
		)
	}

	return project, nil
}

func (s *ProjectService) DeleteProject(projectID uuid.UUID, user *users_models.User) error {
	project, err := s.getProjectByID(projectID)
	if err != nil {
		return err
	}

	if _, err := s.workspaceForModification(project.WorkspaceID, user); err != nil {
		return err
	}

	if err := s.projectRepository.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&user.ID,
		&project.WorkspaceID,
	)

	return nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, user *users_models.User) (*Project, error) {
	project, err := s.getProjectByID(projectID)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaceForViewing(project.WorkspaceID, user); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) GetProjectsByWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) ([]*Project, error) {
	if _, err := s.workspaceForViewing(workspaceID, user); err != nil {
		return nil, err
	}

	projects, err := s.projectRepository.FindByWorkspaceID(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	if projects == nil {
		projects = []*Project{}
	}

	return projects, nil
}

func (s *ProjectService) CountProjects(workspaceID uuid.UUID) (int64, error) {
	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return 0, err
	}

	count, err := s.projectRepository.CountByWorkspaceID(workspaceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return count, nil
}

// GetWorkspaceStats reports project and member counts of a workspace the
// user can view.
func (s *ProjectService) GetWorkspaceStats(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*WorkspaceStatsResponseDTO, error) {
	if _, err := s.workspaceForViewing(workspaceID, user); err != nil {
		return nil, err
	}

	projects, err := s.CountProjects(workspaceID)
	if err != nil {
		return nil, err
	}

	contributors, err := s.membershipService.CountContributors(workspaceID)
	if err != nil {
		return nil, err
	}

	moderators, err := s.membershipService.CountModerators(workspaceID)
	if err != nil {
		return nil, err
	}

	return &WorkspaceStatsResponseDTO{
		WorkspaceID:  workspaceID,
		Projects:     projects,
		Contributors: contributors,
		Moderators:   moderators,
	}, nil
}

func (s *ProjectService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	if err := s.projectRepository.DeleteByWorkspaceID(workspaceID); err != nil {
		s.logger.Error("failed to delete workspace projects", "workspaceId", workspaceID, "error", err)
		return fmt.Errorf("failed to delete projects: %w", err)
	}

	return nil
}

func (s *ProjectService) getProjectByID(projectID uuid.UUID) (*Project, error) {
	project, err := s.projectRepository.FindByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, ErrProjectNotFound
	}

	return project, nil
}

func (s *ProjectService) workspaceForViewing(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	canView, err := s.workspaceService.CanUserAccessWorkspace(workspace, user)
	if err != nil {
		return nil, err
	}
	if !canView {
		return nil, ErrNotAllowedToViewProjects
	}

	return workspace, nil
}

// workspaceForModification allows the creator, admins and workspace moderators.
func (s *ProjectService) workspaceForModification(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	if s.workspaceService.CanUserManageWorkspace(workspace, user) {
		return workspace, nil
	}

	isModerator, err := s.membershipService.IsModerator(workspaceID, user.ID)
	if err != nil {
		return nil, err
	}
	if !isModerator {
		return nil, ErrNotAllowedToModify
	}

	return workspace, nil
}

func (s *ProjectService) ensureNameIsFree(
	workspaceID uuid.UUID,
	name string,
	exceptProjectID uuid.UUID,
) error {
	existing, err := s.projectRepository.FindByWorkspaceAndName(workspaceID, name)
	if err != nil {
		return fmt.Errorf("failed to check project name: %w", err)
	}

	if existing != nil && existing.ID != exceptProjectID {
		return ErrProjectNameTaken
	}

	return nil
}
