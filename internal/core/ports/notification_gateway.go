package ports

import "context"

// Notification is a push message for one recipient.
type Notification struct {
	RecipientID string
	PushToken   string
	Title       string
	Body        string
	Data        map[string]string
}

// NotificationGateway delivers push notifications. Send is best-effort and
// must honour ctx deadlines.
type NotificationGateway interface {
	Send(ctx context.Context, notification Notification) error
}
