package tasks_services

import (
	"fmt"
	"log/slog"
	"strings"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	tasks_dto "trailiva-backend/internal/features/tasks/dto"
	tasks_enums "trailiva-backend/internal/features/tasks/enums"
	tasks_interfaces "trailiva-backend/internal/features/tasks/interfaces"
	tasks_models "trailiva-backend/internal/features/tasks/models"
	users_models "trailiva-backend/internal/features/users/models"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/apperr"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound          = apperr.NotFound("task not found")
	ErrTaskNameRequired      = apperr.BadRequest("task name is required")
	ErrInvalidPriority       = apperr.BadRequest("invalid task priority")
	ErrInvalidTab            = apperr.BadRequest("invalid task tab")
	ErrFilterRequired        = apperr.BadRequest("either priority or tab must be provided")
	ErrNotAValidMember       = apperr.Unauthorized("not a valid member")
	ErrNotAllowedToViewTasks = apperr.Unauthorized("insufficient permissions to view tasks of this workspace")
	ErrNotAllowedToModify    = apperr.Unauthorized("insufficient permissions to modify tasks of this workspace")
)

type TaskService struct {
	taskRepository    tasks_interfaces.TaskRepository
	workspaceService  *workspaces_services.WorkspaceService
	membershipService *workspaces_services.MembershipService
	auditLogService   *audit_logs.AuditLogService
	logger            *slog.Logger
}

func NewTaskService(
	taskRepository tasks_interfaces.TaskRepository,
	workspaceService *workspaces_services.WorkspaceService,
	membershipService *workspaces_services.MembershipService,
	auditLogService *audit_logs.AuditLogService,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskRepository,
		workspaceService,
		membershipService,
		auditLogService,
		logger,
	}
}

func (s *TaskService) CreateTask(
	workspaceID uuid.UUID,
	request *tasks_dto.TaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	if _, err := s.workspaceForModification(workspaceID, user); err != nil {
		return nil, err
	}

	task := tasks_dto.ToTask(workspaceID, request)
	if task.Priority == "" {
		task.Priority = tasks_enums.PriorityMedium
	}
	if task.Tab == "" {
		task.Tab = tasks_enums.TabPending
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task created: %s", task.Name),
		&user.ID,
		&workspaceID,
	)

	return task, nil
}

func (s *TaskService) UpdateTask(
	taskID uuid.UUID,
	request *tasks_dto.TaskRequestDTO,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaceForModification(task.WorkspaceID, user); err != nil {
		return nil, err
	}

	task.Name = request.Name
	task.Description = request.Description
	task.Tag = request.Tag
	task.DueDate = request.DueDate
	if request.Priority != "" {
		task.Priority = request.Priority
	}
	if request.Tab != "" {
		task.Tab = request.Tab
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

func (s *TaskService) UpdateTaskTag(
	taskID uuid.UUID,
	tag string,
	user *users_models.User,
) (*tasks_models.Task, error) {
	task, err := s.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.workspaceForModification(task.WorkspaceID, user); err != nil {
		return nil, err
	}

	task.Tag = strings.TrimSpace(tag)

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task tag: %w", err)
	}

	return task, nil
}

func (s *TaskService) DeleteTask(taskID uuid.UUID, user *users_models.User) error {
	task, err := s.GetTaskByID(taskID)
	if err != nil {
		return err
	}

	if _, err := s.workspaceForModification(task.WorkspaceID, user); err != nil {
		return err
	}

	if err := s.taskRepository.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task deleted: %s", task.Name),
		&user.ID,
		&task.WorkspaceID,
	)

	return nil
}

// GetTaskByID loads a task without access checks.
func (s *TaskService) GetTaskByID(taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if task == nil {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

// GetTaskDetail returns a task of the workspace; a task of another workspace
// is reported as missing.
func (s *TaskService) GetTaskDetail(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	user *users_models.User,
) (*tasks_models.Task, error) {
	if _, err := s.workspaceForViewing(workspaceID, user); err != nil {
		return nil, err
	}

	return s.getWorkspaceTask(workspaceID, taskID)
}

func (s *TaskService) GetTasksByWorkspaceID(
	workspaceID uuid.UUID,
	user *users_models.User,
) (tasks_models.TaskList, error) {
	if _, err := s.workspaceForViewing(workspaceID, user); err != nil {
		return tasks_models.TaskList{}, err
	}

	return s.loadTasks(workspaceID)
}

func (s *TaskService) FilterByPriority(
	workspaceID uuid.UUID,
	priority tasks_enums.Priority,
) (tasks_models.TaskList, error) {
	tasks, err := s.loadTasks(workspaceID)
	if err != nil {
		return tasks_models.TaskList{}, err
	}

	if !priority.IsValid() {
		return tasks_models.TaskList{}, ErrInvalidPriority
	}

	return tasks.Filter(func(task tasks_models.Task) bool {
		return task.Priority == priority
	}), nil
}

func (s *TaskService) FilterByTab(
	workspaceID uuid.UUID,
	tab tasks_enums.Tab,
) (tasks_models.TaskList, error) {
	tasks, err := s.loadTasks(workspaceID)
	if err != nil {
		return tasks_models.TaskList{}, err
	}

	if !tab.IsValid() {
		return tasks_models.TaskList{}, ErrInvalidTab
	}

	return tasks.Filter(func(task tasks_models.Task) bool {
		return task.Tab == tab
	}), nil
}

// FilterTasks checks the user can view the workspace and then filters by
// priority when given, otherwise by tab.
func (s *TaskService) FilterTasks(
	workspaceID uuid.UUID,
	query *tasks_dto.FilterTasksQueryDTO,
	user *users_models.User,
) (tasks_models.TaskList, error) {
	if _, err := s.workspaceForViewing(workspaceID, user); err != nil {
		return tasks_models.TaskList{}, err
	}

	switch {
	case query.Priority != "":
		return s.FilterByPriority(workspaceID, query.Priority)
	case query.Tab != "":
		return s.FilterByTab(workspaceID, query.Tab)
	default:
		return tasks_models.TaskList{}, ErrFilterRequired
	}
}

// AssignTask hands a task of the workspace to a contributor on behalf of a
// moderator. Both must hold the matching membership in that workspace.
func (s *TaskService) AssignTask(
	workspaceID uuid.UUID,
	moderatorID uuid.UUID,
	contributorID uuid.UUID,
	taskID uuid.UUID,
) (*tasks_models.Task, error) {
	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return nil, err
	}

	isModerator, err := s.membershipService.IsModerator(workspaceID, moderatorID)
	if err != nil {
		return nil, err
	}

	isContributor, err := s.membershipService.IsContributor(workspaceID, contributorID)
	if err != nil {
		return nil, err
	}

	if !isModerator || !isContributor {
		return nil, ErrNotAValidMember
	}

	task, err := s.getWorkspaceTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	task.Assign(contributorID, moderatorID)

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task assigned: %s", task.Name),
		&moderatorID,
		&workspaceID,
	)

	return task, nil
}

// MarkRequested flags a task of the workspace as requested by a contributor.
func (s *TaskService) MarkRequested(workspaceID uuid.UUID, taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.getWorkspaceTask(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	if task.IsRequested {
		return task, nil
	}

	task.IsRequested = true

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to mark task as requested: %w", err)
	}

	return task, nil
}

func (s *TaskService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	if err := s.taskRepository.DeleteTasksByWorkspaceID(workspaceID); err != nil {
		s.logger.Error("failed to delete workspace tasks", "workspaceId", workspaceID, "error", err)
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	return nil
}

func (s *TaskService) loadTasks(workspaceID uuid.UUID) (tasks_models.TaskList, error) {
	if _, err := s.workspaceService.GetWorkspaceByID(workspaceID); err != nil {
		return tasks_models.TaskList{}, err
	}

	tasks, err := s.taskRepository.GetTasksByWorkspaceID(workspaceID)
	if err != nil {
		return tasks_models.TaskList{}, fmt.Errorf("failed to get tasks: %w", err)
	}

	return tasks_models.NewTaskList(tasks), nil
}

func (s *TaskService) getWorkspaceTask(workspaceID uuid.UUID, taskID uuid.UUID) (*tasks_models.Task, error) {
	task, err := s.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}

	if task.WorkspaceID != workspaceID {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) workspaceForViewing(
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
		return nil, ErrNotAllowedToViewTasks
	}

	return workspace, nil
}

// workspaceForModification allows the creator, admins and workspace moderators.
func (s *TaskService) workspaceForModification(
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

func validateTask(task *tasks_models.Task) error {
	task.Name = strings.TrimSpace(task.Name)
	task.Tag = strings.TrimSpace(task.Tag)

	if task.Name == "" {
		return ErrTaskNameRequired
	}
	if !task.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !task.Tab.IsValid() {
		return ErrInvalidTab
	}

	return nil
}
