package utils

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth scopes for the Google APIs the service talks to.
const (
	ScopeSheets    = "https://www.googleapis.com/auth/spreadsheets"
	ScopeGmailSend = "https://www.googleapis.com/auth/gmail.send"
)

// TokenSource builds a service-account token source from a credentials file.
// subject, when non-empty, is the user to impersonate via domain-wide
// delegation; Gmail sends require it, Sheets access does not.
func TokenSource(ctx context.Context, credentialsFile, subject string, scopes ...string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	jwtConfig.Subject = subject

	return jwtConfig.TokenSource(ctx), nil
}
