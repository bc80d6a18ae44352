// Package notification turns domain events into email to the school staff.
package notification

import (
	"context"
	"fmt"

	"kurscrm_backend/internal/events"
	"kurscrm_backend/platform/logger"
)

// Mailer is satisfied by the email sender.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Directory resolves which staff addresses receive notifications.
type Directory interface {
	AdminEmails(ctx context.Context) ([]string, error)
}

type Service struct {
	mailer    Mailer
	directory Directory
	logger    *logger.Logger
}

func New(mailer Mailer, directory Directory, log *logger.Logger) *Service {
	return &Service{mailer: mailer, directory: directory, logger: log}
}

// Subscribe registers the notification handlers on the event bus.
func (s *Service) Subscribe(bus events.Bus) {
	bus.Subscribe("leads.converted", events.HandlerFunc(s.onLeadConverted))
	bus.Subscribe("leads.follow_up.due", events.HandlerFunc(s.onFollowUpDue))
}

func (s *Service) onLeadConverted(ctx context.Context, event events.Event) error {
	converted, ok := event.(events.LeadConverted)
	if !ok {
		return nil
	}

	subject := "New student: " + converted.FullName
	body := fmt.Sprintf("Lead %s was converted into student %s.\n\nLead: %s\nStudent: %s\n",
		converted.FullName, converted.FullName, converted.LeadID, converted.PersonID)

	return s.broadcast(ctx, subject, body)
}

func (s *Service) onFollowUpDue(ctx context.Context, event events.Event) error {
	due, ok := event.(events.LeadFollowUpDue)
	if !ok {
		return nil
	}

	subject := "Follow-up due: " + due.FullName
	body := fmt.Sprintf("A follow-up with %s is due on %s.\n\nLead: %s\n",
		due.FullName, due.DueDate.Format("2006-01-02"), due.LeadID)

	return s.broadcast(ctx, subject, body)
}

func (s *Service) broadcast(ctx context.Context, subject, body string) error {
	recipients, err := s.directory.AdminEmails(ctx)
	if err != nil {
		return fmt.Errorf("resolve recipients: %w", err)
	}

	for _, to := range recipients {
		if err := s.mailer.Send(ctx, to, subject, body); err != nil {
			s.logger.Error("notification mail failed", "to", to, "error", err)
		}
	}
	return nil
}
