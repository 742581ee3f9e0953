package users_services

import (
	"sync"

	"trailiva-backend/internal/config"
	users_repositories "trailiva-backend/internal/features/users/repositories"
)

var (
	userService     *UserService
	userServiceOnce sync.Once
)

// GetUserService is lazy so that importing the package does not load the
// environment.
func GetUserService() *UserService {
	userServiceOnce.Do(func() {
		userService = NewUserService(
			users_repositories.GetUserRepository(),
			config.GetEnv().JWTSecret,
			nil,
		)
	})

	return userService
}
