package users_controllers

import (
	"sync"

	users_services "trailiva-backend/internal/features/users/services"

	"golang.org/x/time/rate"
)

var (
	userController     *UserController
	userControllerOnce sync.Once
)

func GetUserController() *UserController {
	userControllerOnce.Do(func() {
		userController = NewUserController(
			users_services.GetUserService(),
			rate.NewLimiter(rate.Limit(3), 3), // 3 rps with 3 burst
		)
	})

	return userController
}
