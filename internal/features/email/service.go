package email

import (
	"fmt"
	"log/slog"
	"strings"
)

type EmailService struct {
	sender     MailSender
	appBaseURL string
	logger     *slog.Logger
}

func NewEmailService(sender MailSender, appBaseURL string, logger *slog.Logger) *EmailService {
	return &EmailService{sender, strings.TrimRight(appBaseURL, "/"), logger}
}

func (s *EmailService) SendWorkspaceRequestTokenEmail(
	recipient string,
	workspaceName string,
	token string,
) error {
	subject := fmt.Sprintf("You are invited to join %s on Trailiva", workspaceName)
	body := fmt.Sprintf(
		"You have been invited to join the workspace %q.\n\n"+
			"Accept the invitation here:\n%s/workspaces/invitations/accept?token=%s\n\n"+
			"Or use this token: %s\n",
		workspaceName,
		s.appBaseURL,
		token,
		token,
	)

	return s.send(recipient, subject, body)
}

func (s *EmailService) SendTaskRequestTokenEmail(
	recipient string,
	contributorName string,
	taskName string,
	token string,
) error {
	subject := fmt.Sprintf("%s requested the task %s", contributorName, taskName)
	body := fmt.Sprintf(
		"%s asked to be assigned the task %q.\n\n"+
			"Approve the request here:\n%s/tasks/requests/approve?token=%s\n\n"+
			"Or use this token: %s\n",
		contributorName,
		taskName,
		s.appBaseURL,
		token,
		token,
	)

	return s.send(recipient, subject, body)
}

func (s *EmailService) SendUserVerificationEmail(
	recipient string,
	userName string,
	token string,
) error {
	subject := "Verify your Trailiva account"
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Confirm your email address to activate your account:\n%s/users/verify?token=%s\n\n"+
			"Or use this token: %s\n",
		userName,
		s.appBaseURL,
		token,
		token,
	)

	return s.send(recipient, subject, body)
}

func (s *EmailService) send(recipient, subject, body string) error {
	if err := s.sender.Send(recipient, subject, body); err != nil {
		s.logger.Error("failed to send email", "recipient", recipient, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}

	s.logger.Info("email sent", "recipient", recipient, "subject", subject)
	return nil
}
