// Package store defines the signup record contract shared by the Google
// Sheets and Postgres backends. Records are flat field-bags keyed by
// human-readable field names; no schema is enforced beyond what callers
// provide.
package store

import (
	"context"
	"errors"
	"fmt"
)

// SignupType identifies one signup table and its slot shape.
type SignupType string

const (
	Liturgist SignupType = "liturgist"
	Greeter   SignupType = "greeter"
	Food      SignupType = "food"
)

// ParseSignupType validates a signup type token from a request.
func ParseSignupType(s string) (SignupType, error) {
	switch SignupType(s) {
	case Liturgist, Greeter, Food:
		return SignupType(s), nil
	}
	return "", fmt.Errorf("unknown signup type %q", s)
}

// Label returns the human-readable service name used in email copy and
// busy-volunteer summaries.
func (t SignupType) Label() string {
	switch t {
	case Liturgist:
		return "Liturgist"
	case Greeter:
		return "Greeter"
	case Food:
		return "Food Distribution"
	}
	return string(t)
}

// Canonical record field names.
const (
	FieldServiceDate      = "serviceDate"
	FieldDisplayDate      = "displayDate"
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldRole             = "role"
	FieldNotes            = "notes"
	FieldAttendanceStatus = "attendanceStatus"
	FieldSubmittedAt      = "submittedAt"
)

// Record is one persisted signup.
type Record struct {
	ID     string
	Fields map[string]string
}

// Field returns a field value, empty string when absent.
func (r Record) Field(name string) string {
	return r.Fields[name]
}

// ErrNotFound is returned by Find and Delete when no record has the
// requested id.
var ErrNotFound = errors.New("record not found")

// SignupStore is the external collaborator holding signup records.
// Implementations provide no multi-record transactions and no conditional
// writes; callers own duplicate prevention and consistency checks.
type SignupStore interface {
	Create(ctx context.Context, signupType SignupType, fields map[string]string) (string, error)
	List(ctx context.Context, signupType SignupType) ([]Record, error)
	Find(ctx context.Context, signupType SignupType, recordID string) (Record, error)
	Update(ctx context.Context, signupType SignupType, recordID string, fields map[string]string) error
	Delete(ctx context.Context, signupType SignupType, recordID string) error
}
