package workspaces_controllers

import (
	"net/http"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	users_middleware "trailiva-backend/internal/features/users/middleware"
	users_models "trailiva-backend/internal/features/users/models"
	workspaces_dto "trailiva-backend/internal/features/workspaces/dto"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkspaceController struct {
	workspaceService *workspaces_services.WorkspaceService
}

func NewWorkspaceController(workspaceService *workspaces_services.WorkspaceService) *WorkspaceController {
	return &WorkspaceController{workspaceService}
}

func (c *WorkspaceController) RegisterRoutes(router *gin.RouterGroup) {
	workspaceRoutes := router.Group("/workspaces")

	workspaceRoutes.POST("/personal", c.CreatePersonalWorkspace)
	workspaceRoutes.POST("/official", c.CreateOfficialWorkspace)
	workspaceRoutes.GET("", c.GetWorkspaces)
	workspaceRoutes.GET("/my/personal", c.GetMyPersonalWorkspace)
	workspaceRoutes.GET("/my/official", c.GetMyOfficialWorkspace)
	workspaceRoutes.GET("/personal/all", c.ListPersonalWorkspaces)
	workspaceRoutes.GET("/official/all", c.ListOfficialWorkspaces)
	workspaceRoutes.GET("/:id", c.GetWorkspace)
	workspaceRoutes.PUT("/:id", c.UpdateWorkspace)
	workspaceRoutes.DELETE("/:id", c.DeleteWorkspace)
	workspaceRoutes.GET("/:id/audit-logs", c.GetWorkspaceAuditLogs)
}

// CreatePersonalWorkspace
// @Summary Create a personal workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body workspaces_dto.CreateWorkspaceRequestDTO true "Workspace creation data"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/personal [post]
func (c *WorkspaceController) CreatePersonalWorkspace(ctx *gin.Context) {
	c.createWorkspace(ctx, c.workspaceService.CreatePersonalWorkspace)
}

// CreateOfficialWorkspace
// @Summary Create an official (team) workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body workspaces_dto.CreateWorkspaceRequestDTO true "Workspace creation data"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/official [post]
func (c *WorkspaceController) CreateOfficialWorkspace(ctx *gin.Context) {
	c.createWorkspace(ctx, c.workspaceService.CreateOfficialWorkspace)
}

func (c *WorkspaceController) createWorkspace(
	ctx *gin.Context,
	create func(
		*workspaces_dto.CreateWorkspaceRequestDTO,
		*users_models.User,
	) (*workspaces_models.Workspace, error),
) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request workspaces_dto.CreateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	workspace, err := create(&request, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, workspaces_dto.ToWorkspaceResponseDTO(workspace))
}

// GetWorkspaces
// @Summary List workspaces the user created or joined
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.ListWorkspacesResponseDTO
// @Failure 401 {object} map[string]string
// @Router /workspaces [get]
func (c *WorkspaceController) GetWorkspaces(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.workspaceService.GetUserWorkspaces(user)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspaces"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetMyPersonalWorkspace
// @Summary Get the personal workspace of the current user
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 404 {object} map[string]string
// @Router /workspaces/my/personal [get]
func (c *WorkspaceController) GetMyPersonalWorkspace(ctx *gin.Context) {
	c.getMyWorkspace(ctx, c.workspaceService.GetUserPersonalWorkspace)
}

// GetMyOfficialWorkspace
// @Summary Get the official workspace created by the current user
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 404 {object} map[string]string
// @Router /workspaces/my/official [get]
func (c *WorkspaceController) GetMyOfficialWorkspace(ctx *gin.Context) {
	c.getMyWorkspace(ctx, c.workspaceService.GetUserOfficialWorkspace)
}

func (c *WorkspaceController) getMyWorkspace(
	ctx *gin.Context,
	get func(*users_models.User) (*workspaces_models.Workspace, error),
) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspace, err := get(user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, workspaces_dto.ToWorkspaceResponseDTO(workspace))
}

// ListPersonalWorkspaces
// @Summary List every personal workspace (admin only)
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.ListWorkspacesResponseDTO
// @Failure 403 {object} map[string]string
// @Router /workspaces/personal/all [get]
func (c *WorkspaceController) ListPersonalWorkspaces(ctx *gin.Context) {
	c.listWorkspaces(ctx, c.workspaceService.ListPersonalWorkspaces)
}

// ListOfficialWorkspaces
// @Summary List every official workspace (admin only)
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workspaces_dto.ListWorkspacesResponseDTO
// @Failure 403 {object} map[string]string
// @Router /workspaces/official/all [get]
func (c *WorkspaceController) ListOfficialWorkspaces(ctx *gin.Context) {
	c.listWorkspaces(ctx, c.workspaceService.ListOfficialWorkspaces)
}

func (c *WorkspaceController) listWorkspaces(
	ctx *gin.Context,
	list func(*users_models.User) ([]*workspaces_models.Workspace, error),
) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	workspaces, err := list(user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	response := workspaces_dto.ListWorkspacesResponseDTO{
		Workspaces: make([]workspaces_dto.WorkspaceResponseDTO, 0, len(workspaces)),
	}
	for _, workspace := range workspaces {
		response.Workspaces = append(response.Workspaces, workspaces_dto.ToWorkspaceResponseDTO(workspace))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetWorkspace
// @Summary Get workspace details
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [get]
func (c *WorkspaceController) GetWorkspace(ctx *gin.Context) {
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

	workspace, err := c.workspaceService.GetWorkspace(workspaceID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, workspaces_dto.ToWorkspaceResponseDTO(workspace))
}

// UpdateWorkspace
// @Summary Rename a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.UpdateWorkspaceRequestDTO true "Workspace update data"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/{id} [put]
func (c *WorkspaceController) UpdateWorkspace(ctx *gin.Context) {
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

	var request workspaces_dto.UpdateWorkspaceRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	workspace, err := c.workspaceService.UpdateWorkspace(workspaceID, &request, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, workspaces_dto.ToWorkspaceResponseDTO(workspace))
}

// DeleteWorkspace
// @Summary Delete a workspace with its projects, tasks and invitations
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id} [delete]
func (c *WorkspaceController) DeleteWorkspace(ctx *gin.Context) {
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

	if err := c.workspaceService.DeleteWorkspace(workspaceID, user); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}

// GetWorkspaceAuditLogs
// @Summary Get workspace audit logs
// @Tags workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param limit query int false "Number of items per page"
// @Param offset query int false "Offset for pagination"
// @Param beforeDate query string false "Filter logs created before this date (RFC3339 format)"
// @Success 200 {object} audit_logs.GetAuditLogsResponse
// @Failure 403 {object} map[string]string
// @Router /workspaces/{id}/audit-logs [get]
func (c *WorkspaceController) GetWorkspaceAuditLogs(ctx *gin.Context) {
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

	request := &audit_logs.GetAuditLogsRequest{}
	if err := ctx.ShouldBindQuery(request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	response, err := c.workspaceService.GetWorkspaceAuditLogs(workspaceID, user, request)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
