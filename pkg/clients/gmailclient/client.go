// Package gmailclient sends transactional email through the Gmail API on
// behalf of the configured sender account.
package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/utils"
)

// EMAIL_INTERVAL throttles sends to respect Gmail API rate limits.
const EMAIL_INTERVAL = 3 * time.Second

// Email is one outbound message. To is required; the rest are optional.
type Email struct {
	To       string
	Cc       string
	Bcc      string
	ReplyTo  string
	Subject  string
	HTMLBody string
	FromName string
}

// Client wraps the Gmail API client.
type Client struct {
	service *gmail.Service
	sender  string

	sendMutex    sync.Mutex
	lastSendTime time.Time
}

// NewClient creates a Gmail client that sends as sender, using domain-wide
// delegation from a service account credentials file.
func NewClient(ctx context.Context, credentialsFile, sender string) (*Client, error) {
	ts, err := utils.TokenSource(ctx, credentialsFile, sender, utils.ScopeGmailSend)
	if err != nil {
		return nil, fmt.Errorf("failed to build token source: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &Client{service: service, sender: sender}, nil
}

// SendEmail sends one message. Throttles requests to respect Gmail API rate
// limits; callers treat failures as log-only (the triggering mutation has
// already committed).
func (c *Client) SendEmail(email Email) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		elapsed := time.Since(c.lastSendTime)
		if elapsed < EMAIL_INTERVAL {
			time.Sleep(EMAIL_INTERVAL - elapsed)
		}
	}

	encodedMessage := base64.URLEncoding.EncodeToString([]byte(c.buildRawMessage(email)))

	gmailMessage := &gmail.Message{
		Raw: encodedMessage,
	}

	if _, err := c.service.Users.Messages.Send("me", gmailMessage).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// buildRawMessage assembles the RFC 2822 message with HTML content headers.
func (c *Client) buildRawMessage(email Email) string {
	var b strings.Builder

	from := c.sender
	if email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", email.FromName, c.sender)
	}

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	if email.Cc != "" {
		fmt.Fprintf(&b, "Cc: %s\r\n", email.Cc)
	}
	if email.Bcc != "" {
		fmt.Fprintf(&b, "Bcc: %s\r\n", email.Bcc)
	}
	if email.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", email.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(email.HTMLBody)

	return b.String()
}
