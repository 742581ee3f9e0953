package email

import (
	"sync"

	"trailiva-backend/internal/config"
	"trailiva-backend/internal/util/logger"
)

var (
	emailService     *EmailService
	emailServiceOnce sync.Once
)

func GetEmailService() *EmailService {
	emailServiceOnce.Do(func() {
		env := config.GetEnv()
		log := logger.GetLogger()

		var sender MailSender = &LogSender{Logger: log}
		if env.SMTPHost != "" {
			sender = &SMTPSender{
				Host:     env.SMTPHost,
				Port:     env.SMTPPort,
				User:     env.SMTPUser,
				Password: env.SMTPPassword,
				From:     env.SMTPFrom,
			}
		}

		emailService = NewEmailService(sender, env.AppBaseURL, log)
	})

	return emailService
}
