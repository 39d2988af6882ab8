package notify

import (
	"fmt"
	"html"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Confirmation builds the signup confirmation message for the signer.
func Confirmation(signupType store.SignupType, name, email, displayDate, role string, routing Routing) Message {
	label := signupType.Label()
	cc, bcc := routing.ForSignup(signupType, email)

	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>You're confirmed as <strong>%s</strong> for %s on <strong>%s</strong>.</p>"+
			"<p>If your plans change, you can cancel from the signup page and the slot will reopen for someone else.</p>"+
			"<p>Thank you for serving!</p>",
		html.EscapeString(name),
		html.EscapeString(role),
		html.EscapeString(label),
		html.EscapeString(displayDate),
	)

	return Message{
		To:       email,
		Cc:       cc,
		Bcc:      bcc,
		ReplyTo:  routing.OperatorEmail,
		Subject:  fmt.Sprintf("%s signup confirmed: %s", label, displayDate),
		HTMLBody: body,
		FromName: routing.FromName,
	}
}

// Cancellation builds the cancellation notice for the person who cancelled.
func Cancellation(signupType store.SignupType, name, email, displayDate, role string, routing Routing) Message {
	label := signupType.Label()
	cc, bcc := routing.ForSignup(signupType, email)

	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Your <strong>%s</strong> signup for %s on <strong>%s</strong> has been cancelled.</p>"+
			"<p>The slot is open again. Thank you for letting us know.</p>",
		html.EscapeString(name),
		html.EscapeString(role),
		html.EscapeString(label),
		html.EscapeString(displayDate),
	)

	return Message{
		To:       email,
		Cc:       cc,
		Bcc:      bcc,
		ReplyTo:  routing.OperatorEmail,
		Subject:  fmt.Sprintf("%s signup cancelled: %s", label, displayDate),
		HTMLBody: body,
		FromName: routing.FromName,
	}
}

// OperatorAlert builds an operator notification for store failures and
// backfill anomalies. severity prefixes the subject so critical alerts
// stand out in the operator's inbox.
func OperatorAlert(severity, summary, detail string, routing Routing) Message {
	return Message{
		To:       routing.OperatorEmail,
		Subject:  fmt.Sprintf("[%s] %s", severity, summary),
		HTMLBody: fmt.Sprintf("<p>%s</p><pre>%s</pre>", html.EscapeString(summary), html.EscapeString(detail)),
		FromName: routing.FromName,
	}
}
