package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"architylez/internal/config"
	"architylez/internal/lib/logger/sl"

	"gopkg.in/gomail.v2"
)

const Subject = "📩 New Contact Form Submission"

// ContactNotification данные заявки для письма администратору.
type ContactNotification struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	log      *slog.Logger
	sender   Sender
	from     string
	fromName string
	to       string
}

var body = template.Must(template.New("contact").Parse(`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{- if .Phone}}
<p><strong>Phone:</strong> {{.Phone}}</p>
{{- end}}
{{- if .Service}}
<p><strong>Service:</strong> {{.Service}}</p>
{{- end}}
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>
`))

// New собирает отправителя по конфигу. Пустой Host включает noop-режим:
// письмо только пишется в лог.
func New(log *slog.Logger, cfg config.MailConfig) *Mailer {
	m := &Mailer{
		log:      log,
		from:     cfg.Username,
		fromName: cfg.FromName,
		to:       cfg.AdminAddress,
	}

	if cfg.Host != "" {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}

	return m
}

// WithSender подменяет SMTP-транспорт, используется в тестах.
func (m *Mailer) WithSender(s Sender) *Mailer {
	m.sender = s
	return m
}

func (m *Mailer) SendAdminNotification(ctx context.Context, n ContactNotification) error {
	const op = "mailer.SendAdminNotification"
	log := m.log.With(slog.String("op", op))

	html, err := Render(n)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if m.sender == nil {
		log.Info("smtp disabled, notification skipped",
			slog.String("to", m.to),
			slog.String("from_email", n.Email),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Reply-To", n.Email)
	msg.SetHeader("Subject", Subject)
	msg.SetBody("text/html", html)

	// gomail не принимает контекст, отмена клиентом отправку не прерывает
	if err := m.sender.DialAndSend(msg); err != nil {
		log.Error("failed to send notification", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("notification sent", slog.String("to", m.to))
	return nil
}

// Render builds the HTML body. All values are escaped.
func Render(n ContactNotification) (string, error) {
	var buf bytes.Buffer
	if err := body.Execute(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
