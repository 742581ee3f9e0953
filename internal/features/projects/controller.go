package projects

import (
	"net/http"

	users_middleware "trailiva-backend/internal/features/users/middleware"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectController struct {
	projectService *ProjectService
}

func NewProjectController(projectService *ProjectService) *ProjectController {
	return &ProjectController{projectService}
}

func (c *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces/:id/projects", c.CreateProject)
	router.GET("/workspaces/:id/projects", c.GetProjects)
	router.GET("/workspaces/:id/stats", c.GetWorkspaceStats)
	router.GET("/projects/:id", c.GetProject)
	router.PUT("/projects/:id", c.UpdateProject)
	router.DELETE("/projects/:id", c.DeleteProject)
}

// CreateProject
// @Summary Create a project in a workspace
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body ProjectRequestDTO true "Project data"
// @Success 200 {object} Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/{id}/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
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

	var request ProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.projectService.CreateProject(workspaceID, &request, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// GetProjects
// @Summary List projects of a workspace
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {array} Project
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/projects [get]
func (c *ProjectController) GetProjects(ctx *gin.Context) {
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

	projects, err := c.projectService.GetProjectsByWorkspace(workspaceID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

// GetWorkspaceStats
// @Summary Get project and member counts of a workspace
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} WorkspaceStatsResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/stats [get]
func (c *ProjectController) GetWorkspaceStats(ctx *gin.Context) {
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

	stats, err := c.projectService.GetWorkspaceStats(workspaceID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetProject
// @Summary Get a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} Project
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	project, err := c.projectService.GetProject(projectID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// UpdateProject
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body ProjectRequestDTO true "Project data"
// @Success 200 {object} Project
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request ProjectRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.projectService.UpdateProject(projectID, &request, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// DeleteProject
// @Summary Delete a project
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	if err := c.projectService.DeleteProject(projectID, user); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.Status(http.StatusNoContent)
}
