package services

import (
	"fmt"

	"go.uber.org/zap"
)

// EmailMessage is an outbound email.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
	ReplyTo string
}

// NotificationService delivers email notifications. The current
// implementation only logs; a real SMTP or provider integration goes here.
type NotificationService struct {
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{
		logger: logger,
	}
}

// SendEmail is a placeholder sender. Replace with a real provider integration.
func (s *NotificationService) SendEmail(message EmailMessage) {
	s.logger.Info("sending email",
		zap.String("to", message.To),
		zap.String("subject", message.Subject),
	)
	s.logger.Debug("email body", zap.String("body", message.Body))
}

// SendVerificationEmail sends the account-activation message for a signup.
func (s *NotificationService) SendVerificationEmail(email, token string) {
	verificationLink := fmt.Sprintf("https://smartdesk.local/auth/verify?token=%s", token)
	body := "Welcome to SmartDesk!\n\n" +
		"Please confirm your email address to activate your account by visiting: " +
		verificationLink + "\n\n" +
		"If you did not create this account, you can ignore this email."

	s.SendEmail(EmailMessage{
		To:      email,
		Subject: "Verify your SmartDesk account",
		Body:    body,
	})
}
