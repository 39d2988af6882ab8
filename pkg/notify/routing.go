package notify

import (
	"strings"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Routing holds the recipient-routing rules for signup notifications.
// Food distribution signups copy the food coordinator and quietly copy the
// system operator; liturgist and greeter signups copy the operator openly.
type Routing struct {
	OperatorEmail        string
	OperatorDomain       string // bare domain, e.g. "ukiahumc.org"
	FoodCoordinatorEmail string
	FromName             string
}

// ForSignup returns the cc and bcc addresses for a signup or cancellation
// notification, given who signed up.
func (r Routing) ForSignup(signupType store.SignupType, signerEmail string) (cc, bcc string) {
	signer := normalizeEmail(signerEmail)

	if signupType == store.Food {
		if signer != normalizeEmail(r.FoodCoordinatorEmail) {
			cc = r.FoodCoordinatorEmail
		}
		if !onDomain(signer, r.OperatorDomain) {
			bcc = r.OperatorEmail
		}
		return cc, bcc
	}

	if signer != normalizeEmail(r.OperatorEmail) {
		cc = r.OperatorEmail
	}
	return cc, ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func onDomain(email, domain string) bool {
	if domain == "" {
		return false
	}
	return strings.HasSuffix(email, "@"+strings.ToLower(domain))
}
