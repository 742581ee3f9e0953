package users_services_test

import (
	"errors"
	"testing"

	users_dto "trailiva-backend/internal/features/users/dto"
	users_enums "trailiva-backend/internal/features/users/enums"
	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"
	users_testing "trailiva-backend/internal/features/users/testing"
	"trailiva-backend/internal/util/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SignUp_NormalizesEmailAndGrantsUserRole(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())

	user, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    "  Alice@Example.COM ",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.IsEnabled)
	assert.Equal(t, []users_enums.UserRole{users_enums.UserRoleUser}, user.Roles)
	assert.NotEqual(t, "password123", user.HashedPassword)
}

func Test_SignUp_WithDuplicateEmail_ReturnsConflict(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	users_testing.CreateTestUser(service, "a@x.com")

	_, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    "A@x.com",
		Password: "password123",
		Name:     "Other",
	})

	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func Test_SignIn_ReturnsTokenResolvableToUser(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	user, _ := users_testing.CreateTestUser(service, "a@x.com")

	response, err := service.SignIn(&users_dto.SignInRequestDTO{Email: "a@x.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, response.UserID)

	resolved, err := service.GetUserFromToken(response.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func Test_SignIn_WithWrongPasswordOrUnknownEmail_ReturnsUnauthorized(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	users_testing.CreateTestUser(service, "a@x.com")

	_, err := service.SignIn(&users_dto.SignInRequestDTO{Email: "a@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, users_services.ErrInvalidCredentials)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{Email: "nobody@x.com", Password: "password123"})
	assert.ErrorIs(t, err, users_services.ErrInvalidCredentials)
}

func Test_SignIn_WhenUserDisabled_ReturnsUnauthorized(t *testing.T) {
	repository := users_testing.NewInMemoryUserRepository()
	service := users_testing.NewTestUserService(repository)
	user, _ := users_testing.CreateTestUser(service, "a@x.com")
	require.NoError(t, repository.SetUserEnabled(user.ID, false))

	_, err := service.SignIn(&users_dto.SignInRequestDTO{Email: "a@x.com", Password: "password123"})

	assert.ErrorIs(t, err, users_services.ErrUserDisabled)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func Test_GetUserFromToken_WithForeignSignature_Fails(t *testing.T) {
	repository := users_testing.NewInMemoryUserRepository()
	service := users_testing.NewTestUserService(repository)
	user, _ := users_testing.CreateTestUser(service, "a@x.com")

	otherService := users_services.NewUserService(repository, "another-secret", nil)
	foreignToken, err := otherService.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.GetUserFromToken(foreignToken.Token)
	assert.ErrorIs(t, err, users_services.ErrInvalidAccessToken)

	_, err = service.GetUserFromToken("not-a-jwt")
	assert.ErrorIs(t, err, users_services.ErrInvalidAccessToken)
}

func Test_GetUserByID_WhenMissing_ReturnsNotFound(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())

	_, err := service.GetUserByID(uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = service.GetUserByEmail("missing@x.com")
	assert.ErrorIs(t, err, users_services.ErrUserNotFound)
}

func Test_GrantRole_IsIdempotent(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	user, _ := users_testing.CreateTestUser(service, "a@x.com")

	require.NoError(t, service.GrantRole(user.ID, users_enums.UserRoleModerator))
	require.NoError(t, service.GrantRole(user.ID, users_enums.UserRoleModerator))

	reloaded, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.ElementsMatch(
		t,
		[]users_enums.UserRole{users_enums.UserRoleUser, users_enums.UserRoleModerator},
		reloaded.Roles,
	)

	assert.ErrorIs(t, service.GrantRole(user.ID, "OWNER"), apperr.ErrBadRequest)
}

func Test_ChangePassword_RequiresOldPassword(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	user, _ := users_testing.CreateTestUser(service, "a@x.com")

	err := service.ChangePassword(user, &users_dto.ChangePasswordRequestDTO{
		OldPassword: "wrong",
		NewPassword: "newpassword123",
	})
	assert.ErrorIs(t, err, users_services.ErrInvalidCredentials)

	err = service.ChangePassword(user, &users_dto.ChangePasswordRequestDTO{
		OldPassword: "password123",
		NewPassword: "newpassword123",
	})
	require.NoError(t, err)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{Email: "a@x.com", Password: "newpassword123"})
	assert.NoError(t, err)
}

func Test_DeleteUser_RemovesUser(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	user, _ := users_testing.CreateTestUser(service, "a@x.com")

	require.NoError(t, service.DeleteUser(user.ID))

	_, err := service.GetUserByID(user.ID)
	assert.ErrorIs(t, err, users_services.ErrUserNotFound)
	assert.ErrorIs(t, service.DeleteUser(user.ID), apperr.ErrNotFound)
}

type recordingIssuer struct {
	issued []uuid.UUID
	err    error
}

func (i *recordingIssuer) IssueUserVerification(user *users_models.User) error {
	i.issued = append(i.issued, user.ID)
	return i.err
}

func Test_SignUp_WithVerificationIssuer_CreatesDisabledUserUntilEnabled(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	issuer := &recordingIssuer{}
	service.SetVerificationIssuer(issuer)

	user, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    "a@x.com",
		Password: "password123",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.False(t, user.IsEnabled)
	assert.Equal(t, []uuid.UUID{user.ID}, issuer.issued)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{Email: "a@x.com", Password: "password123"})
	assert.ErrorIs(t, err, users_services.ErrUserDisabled)

	enabled, err := service.EnableUser(user.ID)
	require.NoError(t, err)
	assert.True(t, enabled.IsEnabled)

	_, err = service.SignIn(&users_dto.SignInRequestDTO{Email: "a@x.com", Password: "password123"})
	assert.NoError(t, err)

	_, err = service.EnableUser(user.ID)
	assert.ErrorIs(t, err, users_services.ErrUserAlreadyEnabled)

	_, err = service.EnableUser(uuid.New())
	assert.ErrorIs(t, err, users_services.ErrUserNotFound)
}

func Test_SignUp_WhenVerificationIssueFails_ReturnsError(t *testing.T) {
	service := users_testing.NewTestUserService(users_testing.NewInMemoryUserRepository())
	service.SetVerificationIssuer(&recordingIssuer{err: errors.New("db down")})

	_, err := service.SignUp(&users_dto.SignUpRequestDTO{
		Email:    "a@x.com",
		Password: "password123",
		Name:     "Alice",
	})

	assert.Error(t, err)
	assert.Equal(t, apperr.Kind(""), apperr.KindOf(err))
}
