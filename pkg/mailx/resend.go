package mailx

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Resend sends through the Resend HTTP API.
type Resend struct {
	client *resend.Client
	from   string
}

// NewResend builds the API mailer. baseURL may be empty.
func NewResend(apiKey, from, baseURL string) (*Resend, error) {
	c := resend.NewClient(apiKey)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("resend base url: %w", err)
		}
		c.BaseURL = u
	}
	return &Resend{client: c, from: from}, nil
}

func (r *Resend) Send(ctx context.Context, msg Message) error {
	_, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}
