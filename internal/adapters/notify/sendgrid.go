package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendgridSink delivers messages through the SendGrid API.
type SendgridSink struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
}

// NewSendgridSink creates a SendGrid-backed sink.
func NewSendgridSink(apiKey, fromAddr, subjPrefix string) *SendgridSink {
	return &SendgridSink{
		client:     sendgrid.NewSendClient(apiKey),
		from:       sgmail.NewEmail("", fromAddr),
		subjPrefix: subjPrefix,
	}
}

// Send delivers one message.
func (s *SendgridSink) Send(ctx context.Context, msg Message) error {
	m := sgmail.NewSingleEmail(
		s.from,
		s.subjPrefix+msg.Subject,
		sgmail.NewEmail("", msg.To),
		msg.Body,
		"",
	)
	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: sendgrid returned status %d", ErrSendFailed, resp.StatusCode)
	}
	return nil
}
