// Package email delivers reminder emails via SMTP.
package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/giftwise-dev/giftwise-api/internal/models"
	"github.com/giftwise-dev/giftwise-api/internal/services"
)

// Config holds SMTP configuration
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// Service sends reminder emails. It implements services.Mailer.
type Service struct {
	config Config
	server string
	auth   smtp.Auth
}

// NewService creates a new email service
func NewService(config Config) *Service {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	return &Service{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
	}
}

// IsConfigured returns true if email is configured
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Port != "" && s.config.From != ""
}

// SendEventReminder sends the "your event is coming up" email.
func (s *Service) SendEventReminder(user *models.User, event *models.Event, timing models.ReminderTiming) error {
	subject := fmt.Sprintf("Reminder: %s is coming up!", event.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", user.FirstName)
	fmt.Fprintf(&b, "This is a reminder that %s starts on %s.\n", event.Name, event.StartAt.Format("Monday, January 2, 2006 at 3:04 PM"))
	if event.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", event.Location)
	}
	if event.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", event.Description)
	}
	b.WriteString("\nSee you there!\n")

	return s.send(user.Email, subject, b.String())
}

// SendGiftReminder sends the per-recipient gift status email: committed gifts
// where the user has one, suggestions where they don't.
func (s *Service) SendGiftReminder(user *models.User, event *models.Event, summaries []services.RecipientGiftSummary, timing models.ReminderTiming) error {
	subject := fmt.Sprintf("Gift Reminder: Get ready for %s!", event.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", user.FirstName)
	fmt.Fprintf(&b, "%s is on %s. Here's where your gifts stand:\n\n", event.Name, event.StartAt.Format("Monday, January 2"))

	for _, summary := range summaries {
		name := strings.TrimSpace(summary.Recipient.FirstName + " " + summary.Recipient.LastName)
		if summary.SelectedGift != nil {
			fmt.Fprintf(&b, "- %s: you're set with %q (%s)\n", name, summary.SelectedGift.Idea, summary.SelectedGift.Status)
			continue
		}
		fmt.Fprintf(&b, "- %s: no gift picked yet. Some ideas:\n", name)
		for _, idea := range summary.Suggestions {
			fmt.Fprintf(&b, "    * %s\n", idea)
		}
	}

	b.WriteString("\nHappy gifting!\n")

	return s.send(user.Email, subject, b.String())
}

func (s *Service) send(to, subject, body string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"Date: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		to,
		from,
		subject,
		time.Now().Format(time.RFC1123Z),
		body,
	))

	return smtp.SendMail(s.server, s.auth, s.config.From, []string{to}, msg)
}
