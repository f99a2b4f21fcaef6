package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"g2p-portal-backend/internal/config"
	"g2p-portal-backend/internal/domain"
	"g2p-portal-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       *slog.Logger
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       logger.WithService("email"),
	}
}

func (s *emailService) SendApplicationSubmitted(ctx context.Context, toEmail, toName, programName, applicationID string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Application received for %s", programName)

	plain := fmt.Sprintf(
		"Dear %s,\n\nYour application for %s has been received.\nYour application ID is %s. Keep it for future reference.\n",
		toName, programName, applicationID)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your application for <strong>%s</strong> has been received.</p><p>Your application ID is <strong>%s</strong>. Keep it for future reference.</p>",
		toName, programName, applicationID)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return domain.WrapError(domain.KindInternal, "failed to send email", err)
	}
	if resp.StatusCode >= 400 {
		return domain.NewError(domain.KindInternal, fmt.Sprintf("email provider returned status %d", resp.StatusCode))
	}
	s.log.Debug("submission email sent", "to", toEmail, "application_id", applicationID)
	return nil
}
