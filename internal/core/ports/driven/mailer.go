package driven

import "context"

// Email is an outbound message.
type Email struct {
	// To lists the recipient addresses.
	To []string

	// Subject is the message subject.
	Subject string

	// HTMLBody is the HTML message body.
	HTMLBody string
}

// Mailer sends email. Implemented by the SMTP adapter.
type Mailer interface {
	// Send delivers the message.
	Send(ctx context.Context, msg Email) error
}
