package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templatesFS embed.FS

var changeTemplate = template.Must(template.ParseFS(templatesFS, "templates/schedule_change_email.html"))

type Email struct {
	Subject string
	HTML    string
}

// RenderEmail builds the notification mail for one schedule change.
func RenderEmail(change domain.ScheduleChange) (Email, error) {
	var subject string
	switch change.Kind {
	case domain.ChangeSaved:
		subject = fmt.Sprintf("Școala altfel - slot actualizat: %s, %s", change.Entry.ClassName, change.Entry.Day)
	case domain.ChangeDeleted:
		subject = fmt.Sprintf("Școala altfel - slot eliberat: %s, %s", change.Entry.ClassName, change.Entry.Day)
	default:
		return Email{}, fmt.Errorf("unsupported change kind %q", change.Kind)
	}

	var buf bytes.Buffer
	if err := changeTemplate.Execute(&buf, change); err != nil {
		return Email{}, err
	}

	return Email{Subject: subject, HTML: buf.String()}, nil
}

// NewMessage renders change into a mail from sender to the comma separated recipients.
func NewMessage(from, to string, change domain.ScheduleChange) (*mail.Msg, error) {
	email, err := RenderEmail(change)
	if err != nil {
		return nil, err
	}

	var rcpts []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			rcpts = append(rcpts, addr)
		}
	}
	if len(rcpts) == 0 {
		return nil, fmt.Errorf("no recipients")
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(rcpts...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)

	return msg, nil
}
