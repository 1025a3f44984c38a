// Package mailer sends templated notification emails over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// Config captures the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// SMTPMailer implements ports.Mailer over plain SMTP.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

var subjects = map[domain.NotificationTemplate]string{
	domain.TemplateOTP:             "Your OfficeCorner verification code",
	domain.TemplateAccountPending:  "Your OfficeCorner registration is pending approval",
	domain.TemplateAccountApproved: "Your OfficeCorner account has been approved",
	domain.TemplateAccountRejected: "Your OfficeCorner registration was not approved",
}

var bodies = map[domain.NotificationTemplate]*template.Template{
	domain.TemplateOTP: template.Must(template.New("otp").Parse(`
<html><body>
<p>Hello,</p>
<p>Your one-time code for {{.purpose}} is:</p>
<p style="font-size:24px;letter-spacing:4px"><b>{{.code}}</b></p>
<p>The code expires in 5 minutes. If you did not request it, ignore this email.</p>
</body></html>`)),

	domain.TemplateAccountPending: template.Must(template.New("pending").Parse(`
<html><body>
<p>Hello {{.name}},</p>
<p>Thanks for registering with OfficeCorner. Your employee account is awaiting
administrator approval. We will email you once a decision has been made.</p>
</body></html>`)),

	domain.TemplateAccountApproved: template.Must(template.New("approved").Parse(`
<html><body>
<p>Hello {{.name}},</p>
<p>Good news: your OfficeCorner employee account has been approved. You can now
sign in and start using the platform.</p>
</body></html>`)),

	domain.TemplateAccountRejected: template.Must(template.New("rejected").Parse(`
<html><body>
<p>Hello {{.name}},</p>
<p>Unfortunately your OfficeCorner registration was not approved.</p>
{{if .reason}}<p>Reason: {{.reason}}</p>{{end}}
<p>You may register again; your new application will be reviewed separately.</p>
</body></html>`)),
}

// Send renders the template and delivers the message. The context is accepted
// for interface symmetry; net/smtp does not support cancellation mid-send.
func (m *SMTPMailer) Send(_ context.Context, to string, tmpl domain.NotificationTemplate, data map[string]string) error {
	body, ok := bodies[tmpl]
	if !ok {
		return fmt.Errorf("unknown email template %q", tmpl)
	}

	var rendered bytes.Buffer
	if err := body.Execute(&rendered, data); err != nil {
		return fmt.Errorf("render email template %q: %w", tmpl, err)
	}

	// CRLF line endings per RFC 5322.
	msg := []byte(strings.Join([]string{
		"To: " + to,
		"From: " + m.cfg.Sender,
		"Subject: " + subjects[tmpl],
		"MIME-version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		rendered.String(),
	}, "\r\n"))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
