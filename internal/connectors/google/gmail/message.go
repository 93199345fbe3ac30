package gmail

import (
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
)

// ToEmailMessage converts a Gmail API message into the mailbox port's type.
func ToEmailMessage(msg *gmailapi.Message) driven.EmailMessage {
	return driven.EmailMessage{
		ID:       msg.Id,
		Subject:  SubjectHeader(msg),
		Snippet:  msg.Snippet,
		Received: ReceivedTime(msg),
	}
}

// SubjectHeader returns the decoded Subject header, or "" when absent.
func SubjectHeader(msg *gmailapi.Message) string {
	if msg.Payload == nil {
		return ""
	}
	for _, h := range msg.Payload.Headers {
		if h.Name == "Subject" {
			return h.Value
		}
	}
	return ""
}

// ReceivedTime converts the message's internal date (epoch milliseconds)
// to a UTC time.
func ReceivedTime(msg *gmailapi.Message) time.Time {
	if msg.InternalDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(msg.InternalDate).UTC()
}
