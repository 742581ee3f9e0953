package workspaces_controllers

import (
	"net/http"

	users_middleware "trailiva-backend/internal/features/users/middleware"
	workspaces_dto "trailiva-backend/internal/features/workspaces/dto"
	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *workspaces_services.MembershipService
}

func NewMembershipController(membershipService *workspaces_services.MembershipService) *MembershipController {
	return &MembershipController{membershipService}
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	membershipRoutes := router.Group("/workspaces/:id")

	membershipRoutes.GET("/members", c.GetMembers)
	membershipRoutes.POST("/members", c.AddContributor)
	membershipRoutes.POST("/moderators", c.AddModerator)
	membershipRoutes.DELETE("/members/:userId", c.RemoveContributor)
	membershipRoutes.DELETE("/moderators/:userId", c.RemoveModerator)
}

// GetMembers
// @Summary Get workspace creator, contributors and moderators
// @Tags workspace-membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} workspaces_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
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

	response, err := c.membershipService.GetMembersAs(user, workspaceID)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddContributor
// @Summary Add an existing user as contributor
// @Tags workspace-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} workspaces_models.WorkspaceMembership
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/{id}/members [post]
func (c *MembershipController) AddContributor(ctx *gin.Context) {
	c.addMember(ctx, workspaces_enums.MemberRoleContributor)
}

// AddModerator
// @Summary Add an existing user as moderator
// @Tags workspace-membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param request body workspaces_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} workspaces_models.WorkspaceMembership
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /workspaces/{id}/moderators [post]
func (c *MembershipController) AddModerator(ctx *gin.Context) {
	c.addMember(ctx, workspaces_enums.MemberRoleModerator)
}

func (c *MembershipController) addMember(ctx *gin.Context, role workspaces_enums.MemberRole) {
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

	var request workspaces_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	membership, err := c.membershipService.AddMemberAs(user, workspaceID, request.Email, role)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, membership)
}

// RemoveContributor
// @Summary Remove a contributor from a workspace
// @Tags workspace-membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/members/{userId} [delete]
func (c *MembershipController) RemoveContributor(ctx *gin.Context) {
	c.removeMember(ctx, workspaces_enums.MemberRoleContributor)
}

// RemoveModerator
// @Summary Remove a moderator from a workspace
// @Tags workspace-membership
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /workspaces/{id}/moderators/{userId} [delete]
func (c *MembershipController) RemoveModerator(ctx *gin.Context) {
	c.removeMember(ctx, workspaces_enums.MemberRoleModerator)
}

func (c *MembershipController) removeMember(ctx *gin.Context, role workspaces_enums.MemberRole) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.membershipService.RemoveMemberAs(user, workspaceID, memberUserID, role); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}
