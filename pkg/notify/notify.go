// Package notify defines the notification dispatcher boundary. The
// coordinator owns recipient routing and message content; the dispatcher
// only delivers. Delivery is fire-and-forget relative to store mutations:
// a failed send is logged, never escalated, and never reverses the
// committed change.
package notify

import (
	"context"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/clients/gmailclient"
)

// Message is one outbound notification.
type Message struct {
	To       string
	Cc       string
	Bcc      string
	ReplyTo  string
	Subject  string
	HTMLBody string
	FromName string
}

// Dispatcher sends transactional email. Swap the Gmail implementation for a
// queue-backed one without touching the coordinator.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// GmailClient is the slice of gmailclient.Client the dispatcher uses.
type GmailClient interface {
	SendEmail(email gmailclient.Email) error
}

// GmailDispatcher delivers messages through the Gmail API.
type GmailDispatcher struct {
	client GmailClient
}

// NewGmailDispatcher wraps a Gmail client as a Dispatcher.
func NewGmailDispatcher(client GmailClient) *GmailDispatcher {
	return &GmailDispatcher{client: client}
}

// Send delivers one message.
func (d *GmailDispatcher) Send(ctx context.Context, msg Message) error {
	return d.client.SendEmail(gmailclient.Email{
		To:       msg.To,
		Cc:       msg.Cc,
		Bcc:      msg.Bcc,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		HTMLBody: msg.HTMLBody,
		FromName: msg.FromName,
	})
}
