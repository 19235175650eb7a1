package message

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sony/gobreaker/v2"
)

// Mailer delivers reply emails to customers.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGridMailer sends mail through SendGrid. Calls run behind a circuit
// breaker so a degraded provider fails fast instead of stalling every
// admin reply.
type SendGridMailer struct {
	apiKey   string
	from     string
	fromName string
	breaker  *gobreaker.CircuitBreaker[*rest.Response]
}

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	settings := gobreaker.Settings{
		Name:    "sendgrid",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("mailer %s: circuit %s -> %s", name, from, to)
		},
	}
	return &SendGridMailer{
		apiKey:   apiKey,
		from:     from,
		fromName: "NatureVita",
		breaker:  gobreaker.NewCircuitBreaker[*rest.Response](settings),
	}
}

// htmlBody renders the plain-text reply as the mail's HTML part. Reply
// text is escaped so markup typed by an admin shows up literally.
func htmlBody(body string) string {
	return fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body))
}

func (s *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	if s.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	msg := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.from),
		subject,
		mail.NewEmail("", to),
		body,
		htmlBody(body),
	)

	resp, err := s.breaker.Execute(func() (*rest.Response, error) {
		client := sendgrid.NewSendClient(s.apiKey)
		resp, err := client.SendWithContext(ctx, msg)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
		}
		return resp, nil
	})
	if err != nil {
		return fmt.Errorf("send reply mail: %w", err)
	}

	log.Printf("mailer: reply sent status=%d to=%s subject=%q", resp.StatusCode, to, subject)
	return nil
}
