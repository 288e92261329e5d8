package interfaces

import "context"

type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// INotificationGateway abstracts outbound email.
// Send returns nil only when the provider accepted the message.
type INotificationGateway interface {
	Send(ctx context.Context, msg EmailMessage) error
}
