package users_controllers

import (
	"net/http"

	users_dto "trailiva-backend/internal/features/users/dto"
	users_middleware "trailiva-backend/internal/features/users/middleware"
	users_services "trailiva-backend/internal/features/users/services"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type UserController struct {
	userService *users_services.UserService
	rateLimiter *rate.Limiter
}

func NewUserController(userService *users_services.UserService, rateLimiter *rate.Limiter) *UserController {
	return &UserController{userService, rateLimiter}
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/users/signup", c.SignUp)
	router.POST("/users/signin", c.SignIn)
}

func (c *UserController) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/users/me", c.GetCurrentUser)
	router.PUT("/users/me/password", c.ChangePassword)
	router.DELETE("/users/me", c.DeleteCurrentUser)
}

// SignUp
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "User signup data"
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/signup [post]
func (c *UserController) SignUp(ctx *gin.Context) {
	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, err := c.userService.SignUp(&request)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, c.userService.GetUserProfile(user))
}

// SignIn
// @Summary Authenticate a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "User signin data"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /users/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	if !c.rateLimiter.Allow() {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		return
	}

	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignIn(&request)
	if err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetCurrentUser
// @Summary Get current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, c.userService.GetUserProfile(user))
}

// ChangePassword
// @Summary Change current user password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.ChangePasswordRequestDTO true "Password change data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.ChangePasswordRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.userService.ChangePassword(user, &request); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// DeleteCurrentUser
// @Summary Delete current user account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/me [delete]
func (c *UserController) DeleteCurrentUser(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := c.userService.DeleteUser(user.ID); err != nil {
		ctx.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
