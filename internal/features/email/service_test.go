package email

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	email_testing "trailiva-backend/internal/features/email/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func Test_SendWorkspaceRequestTokenEmail_IncludesTokenLink(t *testing.T) {
	sender := &email_testing.MockMailSender{}
	sender.On(
		"Send",
		"b@x.com",
		"You are invited to join Acme on Trailiva",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "https://app.trailiva.test/workspaces/invitations/accept?token=tok-1")
		}),
	).Return(nil).Once()

	service := NewEmailService(sender, "https://app.trailiva.test/", slog.New(slog.DiscardHandler))

	err := service.SendWorkspaceRequestTokenEmail("b@x.com", "Acme", "tok-1")

	assert.NoError(t, err)
	sender.AssertExpectations(t)
}

func Test_SendTaskRequestTokenEmail_WhenSenderFails_ReturnsError(t *testing.T) {
	sender := &email_testing.MockMailSender{}
	sender.On("Send", "mod@x.com", mock.Anything, mock.Anything).
		Return(errors.New("connection refused")).Once()

	service := NewEmailService(sender, "http://localhost:4005", slog.New(slog.DiscardHandler))

	err := service.SendTaskRequestTokenEmail("mod@x.com", "Bob", "Write docs", "tok-2")

	assert.ErrorContains(t, err, "connection refused")
	sender.AssertExpectations(t)
}

func Test_SendUserVerificationEmail_IncludesVerifyLink(t *testing.T) {
	sender := &email_testing.MockMailSender{}
	sender.On(
		"Send",
		"a@x.com",
		"Verify your Trailiva account",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Hi Alice") &&
				strings.Contains(body, "http://localhost:4005/users/verify?token=tok-3")
		}),
	).Return(nil).Once()

	service := NewEmailService(sender, "http://localhost:4005", slog.New(slog.DiscardHandler))

	assert.NoError(t, service.SendUserVerificationEmail("a@x.com", "Alice", "tok-3"))
	sender.AssertExpectations(t)
}

func Test_BuildMessage_WritesHeadersBeforeBody(t *testing.T) {
	message := string(buildMessage("from@x.com", "to@x.com", "Hi", "body"))

	assert.True(t, strings.HasPrefix(message, "From: from@x.com\r\nTo: to@x.com\r\nSubject: Hi\r\n"))
	assert.True(t, strings.HasSuffix(message, "\r\n\r\nbody"))
}

func Test_LoginAuth_AnswersChallenges(t *testing.T) {
	auth := &loginAuth{"user", "secret"}

	mechanism, _, err := auth.Start(nil)
	assert.NoError(t, err)
	assert.Equal(t, "LOGIN", mechanism)

	username, err := auth.Next([]byte("Username:"), true)
	assert.NoError(t, err)
	assert.Equal(t, []byte("user"), username)

	password, err := auth.Next([]byte("Password:"), true)
	assert.NoError(t, err)
	assert.Equal(t, []byte("secret"), password)

	_, err = auth.Next([]byte("Other:"), true)
	assert.Error(t, err)
}
