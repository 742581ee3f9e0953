package tasks_controllers

import (
	"net/http"

	tasks_dto "trailiva-backend/internal/features/tasks/dto"
	tasks_services "trailiva-backend/internal/features/tasks/services"
	users_middleware "trailiva-backend/internal/features/users/middleware"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskController struct {
	taskService *tasks_services.TaskService
}

func NewTaskController(taskService *tasks_services.TaskService) *TaskController {
	return &TaskController{taskService}
}

func (c *TaskController) RegisterRoutes(router *gin.RouterGroup) {
	workspaceTasks := router.Group("/workspaces/:id/tasks")

	workspaceTasks.POST("", c.CreateTask)
	workspaceTasks.GET("", c.GetTasks)
	workspaceTasks.GET("/filter", c.FilterTasks)
	workspaceTasks.GET("/:taskId", c.GetTaskDetail)
	workspaceTasks.POST("/:taskId/assign", c.AssignTask)

	taskRoutes := router.Group("/tasks")

	taskRoutes.PUT("/:id", c.UpdateTask)
	taskRoutes.DELETE("/:id", c.DeleteTask)
	taskRoutes.PUT("/:id/tag", c.UpdateTaskTag)
}

// CreateTask
// @Summary Create a task in a workspace
// @Description Priority defaults to MEDIUM and tab to PENDING
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body tasks_dto.TaskRequestDTO true "Task data"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	var request tasks_dto.TaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.CreateTask(workspaceID, &request, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTO(*task))
}

// GetTasks
// @Summary List tasks of a workspace in creation order
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {array} tasks_dto.TaskResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/tasks [get]
func (c *TaskController) GetTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	tasks, err := c.taskService.GetTasksByWorkspaceID(workspaceID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTOs(tasks))
}

// FilterTasks
// @Summary Filter tasks of a workspace by priority or tab
// @Description When both are given, priority wins
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param priority query string false "LOW, MEDIUM, HIGH or URGENT"
// @Param tab query string false "PENDING, IN_PROGRESS, UNDER_REVIEW or COMPLETED"
// @Success 200 {array} tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/tasks/filter [get]
func (c *TaskController) FilterTasks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	var query tasks_dto.FilterTasksQueryDTO
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := c.taskService.FilterTasks(workspaceID, &query, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTOs(tasks))
}

// GetTaskDetail
// @Summary Get a task of a workspace
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/tasks/{taskId} [get]
func (c *TaskController) GetTaskDetail(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := c.taskService.GetTaskDetail(workspaceID, taskID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTO(*task))
}

// AssignTask
// @Summary Assign a task to a contributor
// @Description The caller must be a moderator of the workspace
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param request body tasks_dto.AssignTaskRequestDTO true "Contributor"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/tasks/{taskId}/assign [post]
func (c *TaskController) AssignTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaceID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("taskId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.AssignTaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.AssignTask(workspaceID, user.ID, request.ContributorID, taskID)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTO(*task))
}

// UpdateTask
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.TaskRequestDTO true "Task data"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.TaskRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.UpdateTask(taskID, &request, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTO(*task))
}

// UpdateTaskTag
// @Summary Replace the tag of a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body tasks_dto.UpdateTaskTagRequestDTO true "Tag"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/tag [put]
func (c *TaskController) UpdateTaskTag(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var request tasks_dto.UpdateTaskTagRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := c.taskService.UpdateTaskTag(taskID, request.Tag, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTO(*task))
}

// DeleteTask
// @Summary Delete a task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	if err := c.taskService.DeleteTask(taskID, user); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.Status(http.StatusNoContent)
}
