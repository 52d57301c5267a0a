package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/brickmint/lead-intake/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// To is where new-lead alerts land (the sales inbox).
	To string
}

func NewEmailSender(host string, port int, user, password, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		To:       to,
	}
}

var alertTemplate = template.Must(template.New("alert").Parse(`
<h2>New buyer lead: {{.FullName}}</h2>
<p>City: {{.City}}<br>
Phone: {{.Phone}}<br>
{{if .Email}}Email: {{.Email}}<br>{{end}}
Origin: {{.Origin}}</p>
<p>Lead id: {{.LeadID}}</p>
`))

// SendNewLeadAlert mails the sales inbox about a freshly captured lead.
func (s *EmailSender) SendNewLeadAlert(payload queue.LeadCapturedPayload) error {
	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, payload); err != nil {
		return fmt.Errorf("failed to render alert template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", fmt.Sprintf("New lead: %s (%s)", payload.FullName, payload.City))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}
