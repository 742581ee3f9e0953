package users_middleware

import (
	"net/http"
	"strings"

	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"
	"trailiva-backend/internal/util/apperr"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware resolves the bearer token into a user and stores it in the
// request context. Requests without a valid token are aborted with 401.
func AuthMiddleware(userService *users_services.UserService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		user, err := userService.GetUserFromToken(token)
		if err != nil {
			message := "Invalid token"
			if apperr.KindOf(err) != "" {
				message = err.Error()
			}

			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_models.User)
	return user, ok
}
