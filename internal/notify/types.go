// Package notify provides the notification dispatcher: direct messages to
// user identities and posts to channel identities, delivered through the
// chat-gateway webhook.
package notify

import "fmt"

// Message is one outbound notification. Exactly one of UserID or ChannelID
// is set.
type Message struct {
	UserID    string `json:"user_id,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Body      string `json:"body"`
}

// NotificationError reports a delivery failure for a single recipient. It
// is logged and skipped by callers; it never aborts the remaining
// recipients of a cycle.
type NotificationError struct {
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification to %s failed: %v", e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
