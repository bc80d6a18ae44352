// Package email sends transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"kurscrm_backend/platform/config"
	"kurscrm_backend/platform/logger"
)

// Sender delivers plain-text notification mail. When email is disabled in
// configuration, Send logs and drops the message so callers never branch.
type Sender struct {
	cfg    config.EmailConfig
	logger *logger.Logger
}

func NewSender(cfg config.EmailConfig, log *logger.Logger) *Sender {
	return &Sender{cfg: cfg, logger: log}
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if !s.cfg.GetEmailEnabled() {
		s.logger.Info("email disabled, dropping message", "to", to, "subject", subject)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(s.cfg.GetSMTPHost(),
		mail.WithPort(s.cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.GetSMTPUsername()),
		mail.WithPassword(s.cfg.GetSMTPPassword()),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}
