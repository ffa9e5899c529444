package messages

import (
	"context"
	"strings"
	"time"

	"github.com/folioworks/folioworks/pkg/logger"
	"github.com/folioworks/folioworks/pkg/metrics"
)

// Mailer forwards an accepted message to an operator mailbox. The shipped
// configuration never wires a real implementation; the branch exists so a
// deployment can enable delivery without touching the intake flow.
type Mailer interface {
	Send(ctx context.Context, m *Message) error
}

// Service validates and stores contact submissions and serves the admin
// read/delete view.
type Service struct {
	repo   Repository
	mailer Mailer
	// delay applied before answering an accepted submission, matching the
	// intake stub's response timing
	delay time.Duration
}

func NewService(repo Repository, mailer Mailer, delay time.Duration) *Service {
	return &Service{repo: repo, mailer: mailer, delay: delay}
}

// Validate checks the public submission fields synchronously, before any
// store write. The returned map carries one human-readable message per
// missing field; an empty map means the submission is acceptable.
func Validate(name, email, body string) map[string]string {
	problems := map[string]string{}
	if strings.TrimSpace(name) == "" {
		problems["name"] = "Name is required"
	}
	if strings.TrimSpace(email) == "" {
		problems["email"] = "Email is required"
	}
	if strings.TrimSpace(body) == "" {
		problems["message"] = "Message is required"
	}
	return problems
}

// Submit stores a new message with a server-stamped creation time. Mail
// forwarding failures are logged and never fail the submission.
func (s *Service) Submit(ctx context.Context, name, email, body string) (*Message, error) {
	m := &Message{Name: name, Email: email, Body: body}
	if _, err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	metrics.MessagesReceived.Inc()
	if s.mailer != nil {
		if err := s.mailer.Send(ctx, m); err != nil {
			logger.Warnf("mail forward for message %s failed: %v", m.ID, err)
		}
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(s.delay):
		}
	}
	return m, nil
}

// List returns all messages, newest first.
func (s *Service) List(ctx context.Context) ([]*Message, error) {
	return s.repo.List(ctx)
}

// Delete removes a message by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
