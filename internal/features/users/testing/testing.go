package users_testing

import (
	"fmt"
	"slices"
	"sync"

	users_dto "trailiva-backend/internal/features/users/dto"
	users_enums "trailiva-backend/internal/features/users/enums"
	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"

	"github.com/google/uuid"
)

const TestJWTSecret = "test-jwt-secret"

// InMemoryUserRepository stores users in maps. Returned users are copies.
type InMemoryUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]users_models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: map[uuid.UUID]users_models.User{}}
}

func (r *InMemoryUserRepository) CreateUser(user *users_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}

	stored := *user
	stored.Roles = slices.Clone(user.Roles)
	r.users[user.ID] = stored

	return nil
}

func (r *InMemoryUserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, nil
	}

	return cloneUser(user), nil
}

func (r *InMemoryUserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, nil
}

func (r *InMemoryUserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil
	}

	user.HashedPassword = hashedPassword
	r.users[userID] = user

	return nil
}

func (r *InMemoryUserRepository) DeleteUser(userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, userID)
	return nil
}

func (r *InMemoryUserRepository) AddUserRole(userID uuid.UUID, role users_enums.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %s does not exist", userID)
	}

	if !slices.Contains(user.Roles, role) {
		user.Roles = append(slices.Clone(user.Roles), role)
	}
	r.users[userID] = user

	return nil
}

func (r *InMemoryUserRepository) SetUserEnabled(userID uuid.UUID, isEnabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil
	}

	user.IsEnabled = isEnabled
	r.users[userID] = user

	return nil
}

func NewTestUserService(repository *InMemoryUserRepository) *users_services.UserService {
	return users_services.NewUserService(repository, TestJWTSecret, nil)
}

// CreateTestUser signs up a user and returns it with a valid access token.
func CreateTestUser(
	userService *users_services.UserService,
	email string,
) (*users_models.User, *users_dto.SignInResponseDTO) {
	user, err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "password123",
		Name:     "Test " + email,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to create test user %s: %v", email, err))
	}

	token, err := userService.GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return user, token
}

// CreateTestAdmin creates a user holding the global ADMIN role.
func CreateTestAdmin(
	userService *users_services.UserService,
	email string,
) (*users_models.User, *users_dto.SignInResponseDTO) {
	user, token := CreateTestUser(userService, email)

	if err := userService.GrantRole(user.ID, users_enums.UserRoleAdmin); err != nil {
		panic(err)
	}

	admin, err := userService.GetUserByID(user.ID)
	if err != nil {
		panic(err)
	}

	return admin, token
}

func cloneUser(user users_models.User) *users_models.User {
	user.Roles = slices.Clone(user.Roles)
	return &user
}
