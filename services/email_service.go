package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"datenight_server/metrics"
	"datenight_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailSender abstracts the email provider. EMAIL_PROVIDER selects the
// implementation; the default is the mock sender, which just logs.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlContent, textContent string) error
}

// NewEmailSenderFromEnv builds the configured sender
func NewEmailSenderFromEnv(cfg aws.Config) EmailSender {
	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = "noreply@speeddating.com"
	}
	if os.Getenv("EMAIL_PROVIDER") == "ses" {
		return &SESEmailSender{Client: sesv2.NewFromConfig(cfg), From: from}
	}
	return &MockEmailSender{From: from}
}

// SESEmailSender delivers through AWS SES
type SESEmailSender struct {
	Client *sesv2.Client
	From   string
}

func (s *SESEmailSender) SendEmail(ctx context.Context, to, subject, htmlContent, textContent string) error {
	_, err := s.Client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.From),
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(htmlContent)},
					Text: &sestypes.Content{Data: aws.String(textContent)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	metrics.EmailsSent.Inc()
	return nil
}

// MockEmailSender logs the email instead of sending it
type MockEmailSender struct {
	From string
}

func (s *MockEmailSender) SendEmail(ctx context.Context, to, subject, htmlContent, textContent string) error {
	log.Printf("📧 EMAIL SENT (Mock):\nTo: %s\nSubject: %s\nFrom: %s\n---\n%s\n---", to, subject, s.From, textContent)
	metrics.EmailsSent.Inc()
	return nil
}

// NotificationService renders and sends the two participant-facing emails
type NotificationService struct {
	Sender EmailSender
}

// SendSelectionLink emails one participant their selection link
func (ns *NotificationService) SendSelectionLink(ctx context.Context, session IssuedSession, event *models.Event) error {
	subject := fmt.Sprintf("Make Your Selections - %s", event.Name)

	var html strings.Builder
	html.WriteString("<html><body>")
	fmt.Fprintf(&html, "<h2>Hi %s!</h2>", session.ParticipantName)
	fmt.Fprintf(&html, "<p>Thanks for joining us at <strong>%s</strong> (%s, %s).</p>", event.Name, event.Date, event.Venue)
	fmt.Fprintf(&html, "<p><a href=\"%s\">Make your selections</a> before %s.</p>", session.SelectionLink, session.ExpiresAt)
	html.WriteString("<p>Your selections are completely confidential. Only mutual matches will be shared.</p>")
	html.WriteString("</body></html>")

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s!\n\n", session.ParticipantName)
	fmt.Fprintf(&text, "Thanks for joining us at %s (%s, %s).\n\n", event.Name, event.Date, event.Venue)
	fmt.Fprintf(&text, "Make your selections here before %s:\n%s\n\n", session.ExpiresAt, session.SelectionLink)
	text.WriteString("Your selections are completely confidential. Only mutual matches will be shared.\n")

	return ns.Sender.SendEmail(ctx, session.Email, subject, html.String(), text.String())
}

// SendMatchResults emails one participant their result sheet. An empty sheet
// still gets a friendly email; no matches is an expected outcome.
func (ns *NotificationService) SendMatchResults(ctx context.Context, result models.ParticipantMatches, event *models.Event) error {
	subject := fmt.Sprintf("Your Speed Dating Results - %s", event.Name)

	var html strings.Builder
	var text strings.Builder
	html.WriteString("<html><body>")
	fmt.Fprintf(&html, "<h2>Hi %s!</h2>", result.Name)
	fmt.Fprintf(&html, "<p>Here are your results from <strong>%s</strong>:</p>", event.Name)
	fmt.Fprintf(&text, "Hi %s!\n\nHere are your results from %s:\n\n", result.Name, event.Name)

	if len(result.RomanticMatches) == 0 && len(result.PlatonicMatches) == 0 {
		html.WriteString("<p>While there weren't any mutual matches from this event, don't be discouraged! We'd love to see you at our next event.</p>")
		text.WriteString("No mutual matches this time, but don't be discouraged! We'd love to see you at our next event.\n")
	}

	if len(result.RomanticMatches) > 0 {
		html.WriteString("<h3>💕 Romantic Matches</h3><ul>")
		text.WriteString("Romantic Matches:\n")
		for _, contact := range result.RomanticMatches {
			fmt.Fprintf(&html, "<li>%s — %s, %s</li>", contact.Name, contact.Email, contact.Phone)
			fmt.Fprintf(&text, "- %s: %s, %s\n", contact.Name, contact.Email, contact.Phone)
		}
		html.WriteString("</ul>")
		text.WriteString("\n")
	}

	if len(result.PlatonicMatches) > 0 {
		html.WriteString("<h3>🤝 Friend Matches</h3><ul>")
		text.WriteString("Friend Matches:\n")
		for _, contact := range result.PlatonicMatches {
			fmt.Fprintf(&html, "<li>%s — %s</li>", contact.Name, contact.Email)
			fmt.Fprintf(&text, "- %s: %s\n", contact.Name, contact.Email)
		}
		html.WriteString("</ul>")
		text.WriteString("\n")
	}

	html.WriteString("<p>Only mutual matches are shared. Your individual selections remain completely confidential.</p>")
	html.WriteString("</body></html>")
	text.WriteString("Only mutual matches are shared. Your individual selections remain confidential.\n")

	return ns.Sender.SendEmail(ctx, result.Email, subject, html.String(), text.String())
}
