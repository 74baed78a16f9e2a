// Package mail renders and sends the notification mails queued by the API.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"gympoint/internal/queue"

	gomail "github.com/wneessen/go-mail"
)

const (
	KindEnrollment = "enrollment_mail"
	KindAnswer     = "answer_mail"
)

type EnrollmentMail struct {
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	PlanTitle    string    `json:"plan_title"`
	Duration     int       `json:"duration"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Price        float64   `json:"price"`
}

type AnswerMail struct {
	StudentName  string    `json:"student_name"`
	StudentEmail string    `json:"student_email"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	AnsweredAt   time.Time `json:"answered_at"`
}

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"date":  func(t time.Time) string { return t.Format("02/01/2006") },
	"money": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}).Parse(`
{{define "enrollment"}}Hello {{.StudentName}},

Your enrollment in the {{.PlanTitle}} plan is confirmed.

Duration: {{.Duration}} month(s)
Start: {{date .StartDate}}
End: {{date .EndDate}}
Total: {{money .Price}}

See you at the gym!
{{end}}
{{define "answer"}}Hello {{.StudentName}},

You asked: {{.Question}}

Our answer: {{.Answer}}

Answered on {{date .AnsweredAt}}.
{{end}}`))

// Dispatcher turns queued jobs into sent messages.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Handle matches queue.Handler.
func (d *Dispatcher) Handle(ctx context.Context, job queue.Job) error {
	var (
		msg Message
		err error
	)
	switch job.Kind {
	case KindEnrollment:
		var data EnrollmentMail
		if err := job.Decode(&data); err != nil {
			return err
		}
		msg, err = render(data.StudentEmail, "Enrollment confirmed", "enrollment", data)
	case KindAnswer:
		var data AnswerMail
		if err := job.Decode(&data); err != nil {
			return err
		}
		msg, err = render(data.StudentEmail, "Your help order was answered", "answer", data)
	default:
		return fmt.Errorf("unknown mail kind %q", job.Kind)
	}
	if err != nil {
		return err
	}
	return d.sender.Send(ctx, msg)
}

func render(to, subject, name string, data interface{}) (Message, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return Message{}, fmt.Errorf("render %s mail: %w", name, err)
	}
	return Message{To: to, Subject: subject, Body: strings.TrimSpace(body.String()) + "\n"}, nil
}

// SMTPSender delivers through an SMTP relay, upgrading to TLS when the
// server offers it.
type SMTPSender struct {
	host    string
	from    string
	options []gomail.Option
	deliver func(ctx context.Context, msg *gomail.Msg) error
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	options := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if user != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(user),
			gomail.WithPassword(password),
		)
	}
	s := &SMTPSender{host: host, from: from, options: options}
	s.deliver = s.dialAndSend
	return s
}

func (s *SMTPSender) dialAndSend(ctx context.Context, msg *gomail.Msg) error {
	client, err := gomail.NewClient(s.host, s.options...)
	if err != nil {
		return fmt.Errorf("smtp client for %s: %w", s.host, err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("mail sender %q: %w", s.from, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mail recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := s.deliver(ctx, m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}
