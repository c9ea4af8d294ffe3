package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/JawherBalti/HiredIn-Back/config"
)

// EmailService handles sending emails via SMTP
type EmailService struct {
	host        string
	port        string
	username    string
	password    string
	fromEmail   string
	frontendURL string
	tmpl        *template.Template
	send        func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NotificationEmailData holds the data for notification emails
type NotificationEmailData struct {
	RecipientName string
	Subject       string
	Message       string
	InboxURL      string
}

// NewEmailService creates a new email service from the SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		fromEmail:   cfg.SMTPFromEmail,
		frontendURL: cfg.FrontendURL,
		tmpl:        template.Must(template.New("notification").Parse(notificationEmailTemplate)),
		send:        smtp.SendMail,
	}
}

// notificationEmailTemplate is the HTML template for workflow notifications
const notificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Subject}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0a66c2; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0a66c2; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Subject}}</h1>
        </div>
        <div class="content">
            <p>Hi {{.RecipientName}},</p>
            <div class="message-box">{{.Message}}</div>
            <p><a href="{{.InboxURL}}">Open your notifications</a></p>
        </div>
        <div class="footer">
            <p>You can turn these emails off in your HiredIn notification settings.</p>
        </div>
    </div>
</body>
</html>`

// Render builds the HTML body of a notification email
func (s *EmailService) Render(data NotificationEmailData) (string, error) {
	var body bytes.Buffer
	if err := s.tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// SendNotificationEmail mirrors an in-app notification to the recipient's inbox
func (s *EmailService) SendNotificationEmail(to, recipientName, subject, message string) error {
	body, err := s.Render(NotificationEmailData{
		RecipientName: recipientName,
		Subject:       subject,
		Message:       message,
		InboxURL:      s.frontendURL + "/notifications",
	})
	if err != nil {
		return err
	}

	// Construct MIME message
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
