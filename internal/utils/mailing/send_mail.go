package mailing

import (
	"context"
	"strconv"

	"gopkg.in/gomail.v2"

	"receipt-insights-backend/internal/utils"
)

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
	Recipient    string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
		Recipient:    utils.GetConfig("SES_TO"),
	}
}

type SMTPMailer struct {
	config MailConfig
}

// NewSMTPMailer is the SMTP alternative to the SES transport, selected with
// MAIL_PROVIDER=smtp.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{config: LoadMailConfig()}
}

func (m *SMTPMailer) Send(_ context.Context, subject string, htmlBody string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.config.SMTPEmail)
	mailer.SetHeader("To", m.config.Recipient)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", htmlBody)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}
