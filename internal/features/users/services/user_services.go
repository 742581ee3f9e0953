package users_services

import (
	"fmt"
	"strings"
	"time"

	users_dto "trailiva-backend/internal/features/users/dto"
	users_enums "trailiva-backend/internal/features/users/enums"
	users_interfaces "trailiva-backend/internal/features/users/interfaces"
	users_models "trailiva-backend/internal/features/users/models"
	"trailiva-backend/internal/storage"
	"trailiva-backend/internal/util/apperr"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = apperr.NotFound("user not found")
	ErrUserAlreadyExists  = apperr.Conflict("user with this email already exists")
	ErrInvalidCredentials = apperr.Unauthorized("email or password is incorrect")
	ErrUserDisabled       = apperr.Unauthorized("user account is disabled or not verified")
	ErrUserAlreadyEnabled = apperr.Conflict("user account is already verified")
	ErrInvalidAccessToken = apperr.Unauthorized("invalid access token")
	ErrInvalidRole        = apperr.BadRequest("invalid role")
)

const accessTokenTTL = 30 * 24 * time.Hour

type UserService struct {
	userRepository     users_interfaces.UserRepository
	jwtSecret          string
	auditLogWriter     users_interfaces.AuditLogWriter
	verificationIssuer users_interfaces.VerificationIssuer
}

func NewUserService(
	userRepository users_interfaces.UserRepository,
	jwtSecret string,
	auditLogWriter users_interfaces.AuditLogWriter,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwtSecret:      jwtSecret,
		auditLogWriter: auditLogWriter,
	}
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// SetVerificationIssuer makes sign-up create disabled accounts that are
// enabled by redeeming the issued token. Without an issuer accounts are
// enabled immediately.
func (s *UserService) SetVerificationIssuer(issuer users_interfaces.VerificationIssuer) {
	s.verificationIssuer = issuer
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) (*users_models.User, error) {
	email := NormalizeEmail(request.Email)

	existingUser, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users_models.User{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(request.Name),
		Email:          email,
		HashedPassword: string(hashedPassword),
		IsEnabled:      s.verificationIssuer == nil,
		CreatedAt:      time.Now().UTC(),
		Roles:          []users_enums.UserRole{users_enums.UserRoleUser},
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		// lost the race against a concurrent sign-up with the same email
		if storage.IsUniqueViolation(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.writeAuditLog(fmt.Sprintf("User registered with email: %s", user.Email), &user.ID)

	if s.verificationIssuer != nil {
		if err := s.verificationIssuer.IssueUserVerification(user); err != nil {
			return nil, fmt.Errorf("failed to issue verification token: %w", err)
		}
	}

	return user, nil
}

// EnableUser marks a verified account as enabled.
func (s *UserService) EnableUser(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if user.IsEnabled {
		return nil, ErrUserAlreadyEnabled
	}

	if err := s.userRepository.SetUserEnabled(userID, true); err != nil {
		return nil, fmt.Errorf("failed to enable user: %w", err)
	}

	user.IsEnabled = true
	s.writeAuditLog(fmt.Sprintf("User verified email: %s", user.Email), &user.ID)

	return user, nil
}

func (s *UserService) SignIn(
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(NormalizeEmail(request.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsEnabled {
		return nil, ErrUserDisabled
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog(fmt.Sprintf("User signed in with email: %s", user.Email), &user.ID)

	return response, nil
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidAccessToken
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidAccessToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidAccessToken
	}

	if !user.IsEnabled {
		return nil, ErrUserDisabled
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(
	user *users_models.User,
) (*users_dto.SignInResponseDTO, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": now.Add(accessTokenTTL).Unix(),
		"iat": now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByEmail(NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) GetUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Roles:     append([]users_enums.UserRole{}, user.Roles...),
		IsEnabled: user.IsEnabled,
		CreatedAt: user.CreatedAt,
	}
}

func (s *UserService) ChangePassword(
	user *users_models.User,
	request *users_dto.ChangePasswordRequestDTO,
) error {
	err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(request.OldPassword))
	if err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.writeAuditLog("Password changed", &user.ID)

	return nil
}

func (s *UserService) DeleteUser(userID uuid.UUID) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}

	if err := s.userRepository.DeleteUser(userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.writeAuditLog("User deleted", &userID)

	return nil
}

// GrantRole adds role to the user's role set. Granting a role the user
// already holds is a no-op.
func (s *UserService) GrantRole(userID uuid.UUID, role users_enums.UserRole) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if user.HasRole(role) {
		return nil
	}

	if err := s.userRepository.AddUserRole(userID, role); err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}

	s.writeAuditLog(fmt.Sprintf("Role %s granted", role), &userID)

	return nil
}

func (s *UserService) writeAuditLog(message string, userID *uuid.UUID) {
	if s.auditLogWriter == nil {
		return
	}

	s.auditLogWriter.WriteAuditLog(message, userID, nil)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
