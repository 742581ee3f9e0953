package email

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// MailSender delivers a single message. Delivery is fire and forget from
// the caller's point of view: there is no confirmation beyond the error.
type MailSender interface {
	Send(to string, subject string, body string) error
}

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s *SMTPSender) Send(to string, subject string, body string) error {
	address := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	conn, err := net.DialTimeout("tcp", address, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.Host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if s.User != "" {
		if err := client.Auth(s.auth(client)); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(s.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}

	if _, err := writer.Write(buildMessage(s.From, to, subject, body)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return client.Quit()
}

func (s *SMTPSender) auth(client *smtp.Client) smtp.Auth {
	_, mechanisms := client.Extension("AUTH")
	if slices.Contains(strings.Fields(mechanisms), "PLAIN") {
		return smtp.PlainAuth("", s.User, s.Password, s.Host)
	}

	return &loginAuth{s.User, s.Password}
}

func buildMessage(from, to, subject, body string) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)

	return []byte(builder.String())
}

// LogSender writes messages to the log. It is used when no SMTP host is
// configured, typically in development.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(to string, subject string, body string) error {
	s.Logger.Info("email not sent, SMTP is not configured", "to", to, "subject", subject, "body", body)
	return nil
}
