package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// EmailService interface for sending emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *EmailNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config    *SMTPConfig
	templates map[NotificationType]*template.Template
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *SMTPConfig) (*SMTPEmailService, error) {
	if err := validateSMTPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}

	service := &SMTPEmailService{
		config:    config,
		templates: make(map[NotificationType]*template.Template),
	}
	service.loadDefaultTemplates()
	return service, nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SendNotification sends a notification via email
func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [SMTP] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)

	htmlBody, textBody, err := s.generateContent(notification)
	if err != nil {
		return fmt.Errorf("failed to generate email content: %w", err)
	}

	return s.SendHTML(ctx, notification.RecipientEmail, notification.Subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("📧 [SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption (recommended for Gmail)
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	_, err = w.Write(message)
	if err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

// generateContent renders the HTML body from the type's template and
// derives a plain-text fallback.
func (s *SMTPEmailService) generateContent(notification *EmailNotification) (string, string, error) {
	tmpl, exists := s.templates[notification.Type]
	if !exists {
		tmpl = s.templates[""]
	}

	data := map[string]interface{}{
		"RecipientName": notification.RecipientName,
		"Subject":       notification.Subject,
		"Data":          notification.TemplateData,
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&htmlBuf, "html", data); err != nil {
		return "", "", err
	}
	if err := tmpl.ExecuteTemplate(&textBuf, "text", data); err != nil {
		textBuf.Reset()
		textBuf.WriteString("Please view this email in HTML format.")
	}

	return htmlBuf.String(), textBuf.String(), nil
}

func (s *SMTPEmailService) loadDefaultTemplates() {
	s.templates[NotificationTypeBookingReceived] = template.Must(template.New("booking_received").Parse(`
{{define "html"}}
<h2>Thank you for booking with TripVeda!</h2>
<p>Hi {{.RecipientName}},</p>
<p>We have received your booking for <strong>{{index .Data "tour_title"}}</strong>.</p>
<p>Booking Reference: <strong>{{index .Data "reference"}}</strong></p>
<p>Total Amount: ₹{{index .Data "total_price"}}</p>
<p>Our team will reach out shortly to confirm your travel details and payment.</p>
<p>You can check your booking status any time using your phone number and reference on our website.</p>
<p>Warm regards,<br>Team TripVeda</p>
{{end}}
{{define "text"}}Hi {{.RecipientName}},

We have received your booking for {{index .Data "tour_title"}}.
Booking Reference: {{index .Data "reference"}}
Total Amount: Rs. {{index .Data "total_price"}}

Our team will reach out shortly to confirm your travel details and payment.

Warm regards,
Team TripVeda{{end}}`))

	s.templates[NotificationTypeStatusUpdate] = template.Must(template.New("status_update").Parse(`
{{define "html"}}
<h2>Your booking status has changed</h2>
<p>Hi {{.RecipientName}},</p>
<p>Your booking for <strong>{{index .Data "tour_title"}}</strong> (ref <strong>{{index .Data "reference"}}</strong>) is now <strong>{{index .Data "status"}}</strong>.</p>
{{if index .Data "hotel_name"}}<p>Hotel: {{index .Data "hotel_name"}}</p>{{end}}
<p>Warm regards,<br>Team TripVeda</p>
{{end}}
{{define "text"}}Hi {{.RecipientName}},

Your booking for {{index .Data "tour_title"}} (ref {{index .Data "reference"}}) is now {{index .Data "status"}}.

Warm regards,
Team TripVeda{{end}}`))

	s.templates[""] = template.Must(template.New("generic").Parse(`
{{define "html"}}
<h2>{{.Subject}}</h2>
<p>Hi {{.RecipientName}},</p>
<p>This is a notification from TripVeda.</p>
<p>Warm regards,<br>Team TripVeda</p>
{{end}}
{{define "text"}}Hi {{.RecipientName}},

This is a notification from TripVeda.

Warm regards,
Team TripVeda{{end}}`))

	log.Println("📧 Default email templates loaded")
}

type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendNotification sends a mock notification
func (s *MockEmailService) SendNotification(ctx context.Context, notification *EmailNotification) error {
	log.Printf("📧 [MOCK] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)
	return nil
}

// SendHTML sends a mock HTML email
func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [MOCK] To: %s, Subject: %s", to, subject)
	log.Printf("📧 [MOCK] HTML Body: %s", strings.TrimSpace(htmlBody))
	return nil
}
