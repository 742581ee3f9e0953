package request_tokens

import (
	"net/http"

	tasks_dto "trailiva-backend/internal/features/tasks/dto"
	users_middleware "trailiva-backend/internal/features/users/middleware"
	workspaces_dto "trailiva-backend/internal/features/workspaces/dto"
	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestTokenController struct {
	requestTokenService *RequestTokenService
}

func NewRequestTokenController(requestTokenService *RequestTokenService) *RequestTokenController {
	return &RequestTokenController{requestTokenService}
}

func (c *RequestTokenController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/workspaces/:id/invitations", c.InviteToWorkspace)
	router.POST("/workspaces/:id/invitations/csv", c.InviteFromCSV)
	router.POST("/workspaces/:id/tasks/:taskId/request", c.RequestTask)
	router.POST("/request-tokens/workspace/redeem", c.RedeemWorkspaceToken)
	router.POST("/request-tokens/task/redeem", c.RedeemTaskToken)
}

// RegisterPublicRoutes mounts the routes an account without a verified
// email can reach.
func (c *RequestTokenController) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/request-tokens/user/verify", c.VerifyUser)
	router.POST("/request-tokens/user/verify/resend", c.ResendUserVerification)
}

// InviteToWorkspace
// @Summary Email invitation tokens to existing users
// @Description Failures are reported per email and do not stop the batch
// @Tags request-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body InviteRequestDTO true "Emails and member role"
// @Success 200 {object} InvitationResultDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/invitations [post]
func (c *RequestTokenController) InviteToWorkspace(ctx *gin.Context) {
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

	var request InviteRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.requestTokenService.InviteToWorkspace(user, workspaceID, request.Emails, request.Role)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// InviteFromCSV
// @Summary Email invitation tokens to every address of an uploaded CSV file
// @Tags request-tokens
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param file formData file true "CSV file with email addresses"
// @Param role formData string false "CONTRIBUTOR or MODERATOR"
// @Success 200 {object} InvitationResultDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/invitations/csv [post]
func (c *RequestTokenController) InviteFromCSV(ctx *gin.Context) {
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

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read CSV file"})
		return
	}
	defer func() { _ = file.Close() }()

	role := workspaces_enums.MemberRole(ctx.PostForm("role"))

	result, err := c.requestTokenService.InviteFromCSV(user, workspaceID, file, role)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// RequestTask
// @Summary Ask the workspace moderators to be assigned a task
// @Tags request-tokens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} TaskRequestResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/tasks/{taskId}/request [post]
func (c *RequestTokenController) RequestTask(ctx *gin.Context) {
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

	token, err := c.requestTokenService.RequestTask(workspaceID, taskID, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, TaskRequestResponseDTO{TaskID: *token.TaskID, ExpiresAt: token.ExpiresAt})
}

// RedeemWorkspaceToken
// @Summary Accept a workspace invitation
// @Tags request-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RedeemTokenRequestDTO true "Invitation token"
// @Success 200 {object} workspaces_dto.WorkspaceResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /request-tokens/workspace/redeem [post]
func (c *RequestTokenController) RedeemWorkspaceToken(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request RedeemTokenRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.requestTokenService.Redeem(request.Token, TokenTypeWorkspaceRequest, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, workspaces_dto.ToWorkspaceResponseDTO(result.Workspace))
}

// RedeemTaskToken
// @Summary Approve a task request and assign the task
// @Description The caller must be a moderator of the task's workspace
// @Tags request-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RedeemTokenRequestDTO true "Task request token"
// @Success 200 {object} tasks_dto.TaskResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /request-tokens/task/redeem [post]
func (c *RequestTokenController) RedeemTaskToken(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request RedeemTokenRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.requestTokenService.Redeem(request.Token, TokenTypeTaskRequest, user)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, tasks_dto.ToTaskResponseDTO(*result.Task))
}

// VerifyUser
// @Summary Verify a signed-up account
// @Tags request-tokens
// @Accept json
// @Produce json
// @Param request body RedeemTokenRequestDTO true "Verification token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /request-tokens/user/verify [post]
func (c *RequestTokenController) VerifyUser(ctx *gin.Context) {
	var request RedeemTokenRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.requestTokenService.Redeem(request.Token, TokenTypeUserVerification, nil)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Account verified", "email": result.User.Email})
}

// ResendUserVerification
// @Summary Mail a new verification token
// @Tags request-tokens
// @Accept json
// @Produce json
// @Param request body ResendVerificationRequestDTO true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /request-tokens/user/verify/resend [post]
func (c *RequestTokenController) ResendUserVerification(ctx *gin.Context) {
	var request ResendVerificationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.requestTokenService.ResendUserVerification(request.Email); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}
