package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/nhfg-leads/internal/infra/queue"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	newLeadTemplate = template.Must(template.ParseFS(templateFS, "templates/new_lead.html"))
	welcomeTemplate = template.Must(template.ParseFS(templateFS, "templates/client_welcome.html"))
)

const welcomeSubject = "Welcome to NHFG"

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		From:   from,
		To:     to,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// RenderNewLeadAlert returns the subject and HTML body for a lead alert.
func RenderNewLeadAlert(event queue.LeadEvent) (string, string, error) {
	data := NewLeadAlertData{
		Name:       event.Name,
		Email:      event.Email,
		Phone:      event.Phone,
		Interest:   event.Interest,
		Source:     event.Source,
		LeadID:     event.LeadID,
		ReceivedAt: event.OccurredAt.Format(time.RFC1123),
	}

	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("render lead alert: %w", err)
	}

	subject := "New lead: " + event.Name
	if event.Source != "" {
		subject += " (" + event.Source + ")"
	}
	return subject, body.String(), nil
}

func (s *EmailSender) SendNewLeadAlert(ctx context.Context, event queue.LeadEvent) error {
	subject, body, err := RenderNewLeadAlert(event)
	if err != nil {
		return err
	}
	return s.send(ctx, s.To, subject, body)
}

// SendClientWelcome greets a new client at their own address rather than
// the advisors' inbox.
func (s *EmailSender) SendClientWelcome(ctx context.Context, to, name string) error {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, ClientWelcomeData{Name: name}); err != nil {
		return fmt.Errorf("render client welcome: %w", err)
	}
	return s.send(ctx, to, welcomeSubject, body.String())
}

func (s *EmailSender) send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	// gomail has no context support; at least skip the dial once cancelled.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send smtp: %w", err)
	}
	return nil
}
