package request_tokens

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	audit_logs "trailiva-backend/internal/features/audit_logs"
	tasks_models "trailiva-backend/internal/features/tasks/models"
	tasks_services "trailiva-backend/internal/features/tasks/services"
	users_models "trailiva-backend/internal/features/users/models"
	users_services "trailiva-backend/internal/features/users/services"
	workspaces_enums "trailiva-backend/internal/features/workspaces/enums"
	workspaces_models "trailiva-backend/internal/features/workspaces/models"
	workspaces_services "trailiva-backend/internal/features/workspaces/services"
	"trailiva-backend/internal/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken     = apperr.InvalidToken("invalid token")
	ErrTokenExpired     = apperr.TokenExpired("token has expired")
	ErrInvalidTokenType = apperr.BadRequest("invalid token type")
	ErrInvalidEmail     = apperr.BadRequest("invalid email address")
	ErrInvalidCSV       = apperr.BadRequest("invalid csv file")
	ErrNoEmails         = apperr.BadRequest("no email addresses provided")
)

// TokenMailer delivers token values to their recipients.
type TokenMailer interface {
	SendWorkspaceRequestTokenEmail(recipient string, workspaceName string, token string) error
	SendTaskRequestTokenEmail(recipient string, contributorName string, taskName string, token string) error
	SendUserVerificationEmail(recipient string, userName string, token string) error
}

// RedeemResult carries the side effect of a redeemed token. Exactly one field
// is set, depending on the token type.
type RedeemResult struct {
	Workspace *workspaces_models.Workspace
	Task      *tasks_models.Task
	User      *users_models.User
}

type RequestTokenService struct {
	tokenRepository   RequestTokenRepository
	userService       *users_services.UserService
	workspaceService  *workspaces_services.WorkspaceService
	membershipService *workspaces_services.MembershipService
	taskService       *tasks_services.TaskService
	mailer            TokenMailer
	auditLogService   *audit_logs.AuditLogService
	logger            *slog.Logger
	validate          *validator.Validate
	ttl               time.Duration
	now               func() time.Time
}

func NewRequestTokenService(
	tokenRepository RequestTokenRepository,
	userService *users_services.UserService,
	workspaceService *workspaces_services.WorkspaceService,
	membershipService *workspaces_services.MembershipService,
	taskService *tasks_services.TaskService,
	mailer TokenMailer,
	auditLogService *audit_logs.AuditLogService,
	logger *slog.Logger,
	ttl time.Duration,
) *RequestTokenService {
	return &RequestTokenService{
		tokenRepository:   tokenRepository,
		userService:       userService,
		workspaceService:  workspaceService,
		membershipService: membershipService,
		taskService:       taskService,
		mailer:            mailer,
		auditLogService:   auditLogService,
		logger:            logger,
		validate:          validator.New(),
		ttl:               ttl,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for issuing and expiry checks.
func (s *RequestTokenService) SetClock(now func() time.Time) {
	s.now = now
}

// IssueWorkspaceToken persists an invitation for an existing user and mails
// it. A failed mail is logged; the token stays redeemable.
func (s *RequestTokenService) IssueWorkspaceToken(
	issuer *users_models.User,
	workspaceID uuid.UUID,
	inviteeEmail string,
	role workspaces_enums.MemberRole,
) (*RequestToken, error) {
	workspace, err := s.invitableWorkspace(issuer, workspaceID)
	if err != nil {
		return nil, err
	}

	return s.issueWorkspaceToken(issuer, workspace, inviteeEmail, role)
}

func (s *RequestTokenService) issueWorkspaceToken(
	issuer *users_models.User,
	workspace *workspaces_models.Workspace,
	inviteeEmail string,
	role workspaces_enums.MemberRole,
) (*RequestToken, error) {
	if role == "" {
		role = workspaces_enums.MemberRoleContributor
	}
	if !role.IsValid() {
		return nil, workspaces_services.ErrInvalidMemberRole
	}

	inviteeEmail = users_services.NormalizeEmail(inviteeEmail)
	if err := s.validate.Var(inviteeEmail, "required,email"); err != nil {
		return nil, ErrInvalidEmail
	}

	invitee, err := s.userService.GetUserByEmail(inviteeEmail)
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &RequestToken{
		ID:          uuid.New(),
		Token:       uuid.NewString(),
		UserID:      invitee.ID,
		TokenType:   TokenTypeWorkspaceRequest,
		MemberRole:  &role,
		WorkspaceID: &workspace.ID,
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
	}

	if err := s.tokenRepository.Create(token); err != nil {
		return nil, fmt.Errorf("failed to save request token: %w", err)
	}

	if err := s.mailer.SendWorkspaceRequestTokenEmail(invitee.Email, workspace.Name, token.Token); err != nil {
		s.logger.Warn(
			"invitation token saved but email was not delivered",
			"workspaceId", workspace.ID,
			"invitee", invitee.Email,
			"error", err,
		)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User %s invited to workspace as %s", invitee.Email, role),
		&issuer.ID,
		&workspace.ID,
	)

	return token, nil
}

// InviteToWorkspace issues one token per distinct email. Per-email failures
// are collected and do not stop the batch.
func (s *RequestTokenService) InviteToWorkspace(
	issuer *users_models.User,
	workspaceID uuid.UUID,
	emails []string,
	role workspaces_enums.MemberRole,
) (*InvitationResultDTO, error) {
	workspace, err := s.invitableWorkspace(issuer, workspaceID)
	if err != nil {
		return nil, err
	}

	emails = normalizeEmails(emails)
	if len(emails) == 0 {
		return nil, ErrNoEmails
	}

	result := &InvitationResultDTO{Invited: []string{}, Failed: []InvitationFailureDTO{}}

	for _, email := range emails {
		if _, err := s.issueWorkspaceToken(issuer, workspace, email, role); err != nil {
			if apperr.KindOf(err) == "" {
				s.logger.Error("failed to invite user", "workspaceId", workspaceID, "email", email, "error", err)
			}

			result.Failed = append(result.Failed, InvitationFailureDTO{
				Email: email,
				Error: apperr.PublicMessage(err),
			})
			continue
		}

		result.Invited = append(result.Invited, email)
	}

	return result, nil
}

// InviteFromCSV treats every non-blank cell as an email address. A leading
// "email" header cell is ignored.
func (s *RequestTokenService) InviteFromCSV(
	issuer *users_models.User,
	workspaceID uuid.UUID,
	reader io.Reader,
	role workspaces_enums.MemberRole,
) (*InvitationResultDTO, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	var emails []string
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ErrInvalidCSV
		}

		for _, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" || strings.EqualFold(cell, "email") {
				continue
			}

			emails = append(emails, cell)
		}
	}

	return s.InviteToWorkspace(issuer, workspaceID, emails, role)
}

// RedeemWorkspaceToken consumes the token before checking its expiry, so an
// expired or conflicting token is gone afterwards as well.
func (s *RequestTokenService) RedeemWorkspaceToken(token string) (*workspaces_models.Workspace, error) {
	claimed, err := s.claim(token, TokenTypeWorkspaceRequest)
	if err != nil {
		return nil, err
	}

	if claimed.WorkspaceID == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userService.GetUserByID(claimed.UserID)
	if err != nil {
		return nil, err
	}

	role := workspaces_enums.MemberRoleContributor
	if claimed.MemberRole != nil {
		role = *claimed.MemberRole
	}

	if _, err := s.membershipService.Onboard(*claimed.WorkspaceID, user, role); err != nil {
		return nil, err
	}

	return s.workspaceService.GetWorkspaceByID(*claimed.WorkspaceID)
}

// RequestTask marks the task as requested by the contributor and mails a
// TASK_REQUEST token to every moderator of the workspace.
func (s *RequestTokenService) RequestTask(
	workspaceID uuid.UUID,
	taskID uuid.UUID,
	contributor *users_models.User,
) (*RequestToken, error) {
	workspace, err := s.workspaceService.GetWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	isContributor, err := s.membershipService.IsContributor(workspaceID, contributor.ID)
	if err != nil {
		return nil, err
	}
	if !isContributor {
		return nil, tasks_services.ErrNotAValidMember
	}

	task, err := s.taskService.MarkRequested(workspaceID, taskID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &RequestToken{
		ID:          uuid.New(),
		Token:       uuid.NewString(),
		UserID:      contributor.ID,
		TokenType:   TokenTypeTaskRequest,
		WorkspaceID: &workspace.ID,
		TaskID:      &task.ID,
		ExpiresAt:   now.Add(s.ttl),
		CreatedAt:   now,
	}

	if err := s.tokenRepository.Create(token); err != nil {
		return nil, fmt.Errorf("failed to save request token: %w", err)
	}

	moderators, err := s.membershipService.GetModerators(workspaceID)
	if err != nil {
		return nil, err
	}

	for _, moderator := range moderators {
		err := s.mailer.SendTaskRequestTokenEmail(moderator.Email, contributor.Name, task.Name, token.Token)
		if err != nil {
			s.logger.Warn(
				"task request token saved but email was not delivered",
				"taskId", task.ID,
				"moderator", moderator.Email,
				"error", err,
			)
		}
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Task requested: %s", task.Name),
		&contributor.ID,
		&workspaceID,
	)

	return token, nil
}

// RedeemTaskToken assigns the requested task to the contributor who asked
// for it. The redeeming user must be a moderator of the task's workspace;
// that is checked before the token is consumed, so a refused redeemer
// leaves the token to the moderators it was mailed to.
func (s *RequestTokenService) RedeemTaskToken(
	moderator *users_models.User,
	token string,
) (*tasks_models.Task, error) {
	token = strings.TrimSpace(token)

	pending, err := s.tokenRepository.FindByToken(token, TokenTypeTaskRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get request token: %w", err)
	}

	if pending == nil || pending.WorkspaceID == nil || pending.TaskID == nil {
		return nil, ErrInvalidToken
	}

	isModerator, err := s.membershipService.IsModerator(*pending.WorkspaceID, moderator.ID)
	if err != nil {
		return nil, err
	}
	if !isModerator {
		return nil, tasks_services.ErrNotAValidMember
	}

	claimed, err := s.claim(token, TokenTypeTaskRequest)
	if err != nil {
		return nil, err
	}

	task, err := s.taskService.GetTaskByID(*claimed.TaskID)
	if err != nil {
		return nil, err
	}

	return s.taskService.AssignTask(task.WorkspaceID, moderator.ID, claimed.UserID, task.ID)
}

func (s *RequestTokenService) Redeem(
	token string,
	tokenType TokenType,
	redeemer *users_models.User,
) (*RedeemResult, error) {
	switch tokenType {
	case TokenTypeWorkspaceRequest:
		workspace, err := s.RedeemWorkspaceToken(token)
		if err != nil {
			return nil, err
		}

		return &RedeemResult{Workspace: workspace}, nil
	case TokenTypeTaskRequest:
		task, err := s.RedeemTaskToken(redeemer, token)
		if err != nil {
			return nil, err
		}

		return &RedeemResult{Task: task}, nil
	case TokenTypeUserVerification:
		user, err := s.VerifyUser(token)
		if err != nil {
			return nil, err
		}

		return &RedeemResult{User: user}, nil
	default:
		return nil, ErrInvalidTokenType
	}
}

// IssueUserVerification persists a verification token for a signed-up user
// and mails it. A failed mail is logged; the user can ask for a new token.
func (s *RequestTokenService) IssueUserVerification(user *users_models.User) error {
	now := s.now()
	token := &RequestToken{
		ID:        uuid.New(),
		Token:     uuid.NewString(),
		UserID:    user.ID,
		TokenType: TokenTypeUserVerification,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.tokenRepository.Create(token); err != nil {
		return fmt.Errorf("failed to save verification token: %w", err)
	}

	if err := s.mailer.SendUserVerificationEmail(user.Email, user.Name, token.Token); err != nil {
		s.logger.Warn(
			"verification token saved but email was not delivered",
			"userId", user.ID,
			"error", err,
		)
	}

	return nil
}

// ResendUserVerification issues a fresh token for an account that is not
// enabled yet. Earlier tokens stay valid until they expire.
func (s *RequestTokenService) ResendUserVerification(email string) error {
	user, err := s.userService.GetUserByEmail(email)
	if err != nil {
		return err
	}

	if user.IsEnabled {
		return users_services.ErrUserAlreadyEnabled
	}

	return s.IssueUserVerification(user)
}

// VerifyUser consumes a verification token and enables its user.
func (s *RequestTokenService) VerifyUser(token string) (*users_models.User, error) {
	claimed, err := s.claim(token, TokenTypeUserVerification)
	if err != nil {
		return nil, err
	}

	return s.userService.EnableUser(claimed.UserID)
}

// SweepExpiredTokens deletes every token whose expiry lies in the past.
func (s *RequestTokenService) SweepExpiredTokens() (int64, error) {
	deleted, err := s.tokenRepository.DeleteExpired(s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	if deleted > 0 {
		s.logger.Info("expired request tokens deleted", "count", deleted)
	}

	return deleted, nil
}

func (s *RequestTokenService) OnBeforeWorkspaceDeletion(workspaceID uuid.UUID) error {
	if err := s.tokenRepository.DeleteByWorkspaceID(workspaceID); err != nil {
		s.logger.Error("failed to delete workspace request tokens", "workspaceId", workspaceID, "error", err)
		return fmt.Errorf("failed to delete request tokens: %w", err)
	}

	return nil
}

func (s *RequestTokenService) claim(token string, tokenType TokenType) (*RequestToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claimed, err := s.tokenRepository.Claim(token, tokenType)
	if err != nil {
		return nil, fmt.Errorf("failed to claim request token: %w", err)
	}

	if claimed == nil {
		return nil, ErrInvalidToken
	}

	if claimed.IsExpired(s.now()) {
		return nil, ErrTokenExpired
	}

	return claimed, nil
}

// invitableWorkspace resolves an official workspace the issuer may invite
// into: the creator or an admin.
func (s *RequestTokenService) invitableWorkspace(
	issuer *users_models.User,
	workspaceID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	workspace, err := s.workspaceService.GetOfficialWorkspaceByID(workspaceID)
	if err != nil {
		return nil, err
	}

	if !s.workspaceService.CanUserManageWorkspace(workspace, issuer) {
		return nil, workspaces_services.ErrNotAllowedToManage
	}

	return workspace, nil
}

func normalizeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	normalized := make([]string, 0, len(emails))

	for _, email := range emails {
		email = users_services.NormalizeEmail(email)
		if email == "" {
			continue
		}

		if _, ok := seen[email]; ok {
			continue
		}

		seen[email] = struct{}{}
		normalized = append(normalized, email)
	}

	return normalized
}
