package auth

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"strconv"

	mail "github.com/go-mail/mail/v2"
)

// Mailer delivers account verification messages.
type Mailer interface {
	SendVerification(to, name, token string) error
}

const verificationTemplate = `{{define "subject"}}Verify your to-do account{{end}}
{{define "plainBody"}}Hi {{.Name}},

Confirm your email address to start using your to-do list:

{{.BaseURL}}/api/v1/auth/verify?token={{.Token}}

If you did not create this account, ignore this message.
{{end}}
{{define "htmlBody"}}<p>Hi {{.Name}},</p>
<p>Confirm your email address to start using your to-do list:</p>
<p><a href="{{.BaseURL}}/api/v1/auth/verify?token={{.Token}}">Verify my account</a></p>
<p>If you did not create this account, ignore this message.</p>
{{end}}`

// SMTPMailer sends verification mail over SMTP.
type SMTPMailer struct {
	dialer  *mail.Dialer
	sender  string
	baseURL string
	tmpl    *template.Template
}

// NewSMTPMailer creates a mailer configured for the given SMTP server.
func NewSMTPMailer(host string, port int, username, password, sender, baseURL string) *SMTPMailer {
	return &SMTPMailer{
		dialer:  mail.NewDialer(host, port, username, password),
		sender:  sender,
		baseURL: baseURL,
		tmpl:    template.Must(template.New("verification").Parse(verificationTemplate)),
	}
}

// SendVerification sends the verification message, retrying delivery a
// few times before giving up.
func (m *SMTPMailer) SendVerification(to, name, token string) error {
	data := struct {
		Name, Token, BaseURL string
	}{Name: name, Token: token, BaseURL: m.baseURL}

	var subject, plainBody, htmlBody bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return fmt.Errorf("failed to render subject: %w", err)
	}
	if err := m.tmpl.ExecuteTemplate(&plainBody, "plainBody", data); err != nil {
		return fmt.Errorf("failed to render plain body: %w", err)
	}
	if err := m.tmpl.ExecuteTemplate(&htmlBody, "htmlBody", data); err != nil {
		return fmt.Errorf("failed to render html body: %w", err)
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", to)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	var err error
	for i := 0; i < 3; i++ {
		if err = m.dialer.DialAndSend(msg); err == nil {
			return nil
		}
	}
	return err
}

// LogMailer logs verification links instead of sending mail. Used in
// development when no SMTP server is configured.
type LogMailer struct {
	baseURL string
}

// SendVerification logs the verification link for the account.
func (m *LogMailer) SendVerification(to, _, token string) error {
	log.Printf("[auth] Verification link for %s: %s/api/v1/auth/verify?token=%s", to, m.baseURL, token)
	return nil
}

// NewMailerFromEnv builds an SMTP mailer when SMTP_HOST is set and a
// logging mailer otherwise.
func NewMailerFromEnv() Mailer {
	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return &LogMailer{baseURL: baseURL}
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	sender := os.Getenv("SMTP_SENDER")
	if sender == "" {
		sender = "no-reply@todo-monolith.local"
	}

	return NewSMTPMailer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), sender, baseURL)
}
