package coordinate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/notify"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

var validate = validator.New()

// SignupRequest is a create request from the signup page.
type SignupRequest struct {
	SignupType  string `json:"signupType" validate:"required"`
	ServiceDate string `json:"serviceDate" validate:"required"`
	DisplayDate string `json:"displayDate" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	Role        string `json:"role" validate:"required"`
	Notes       string `json:"notes"`
}

// ValidationError rejects a request before any store access.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid signup request: " + e.Reason
}

// ConflictError reports a slot already held by someone else. TakenBy gives
// the caller enough detail to refresh and pick another slot.
type ConflictError struct {
	TakenBy string
}

func (e *ConflictError) Error() string {
	return "slot already taken by " + e.TakenBy
}

// Signup validates the request, pre-checks for a duplicate, and writes the
// record. The pre-check and write are not atomic: two concurrent requests
// can both pass the check before either writes. The per-slot lock closes
// that window for this instance only; the cross-instance race is an
// accepted limit of the store.
func (c *Coordinator) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", &ValidationError{Reason: err.Error()}
	}

	signupType, err := store.ParseSignupType(req.SignupType)
	if err != nil {
		return "", &ValidationError{Reason: err.Error()}
	}

	role, err := roles.Parse(req.Role)
	if err != nil {
		return "", &ValidationError{Reason: err.Error()}
	}

	unlock := c.slotLocks.lock(signupType, req.ServiceDate, role)
	defer unlock()

	records, err := c.store.List(ctx, signupType)
	if err != nil {
		c.logger.Error("Duplicate pre-check failed",
			zap.String("signup_type", string(signupType)),
			zap.Error(err))
		c.alertOperator(ctx, "ERROR",
			fmt.Sprintf("Signup pre-check failed for %s", signupType.Label()),
			err.Error())
		return "", fmt.Errorf("failed to check existing signups: %w", err)
	}

	// Compare through the role parser on both sides so a case-variant
	// duplicate ("Liturgist" vs "liturgist") cannot slip past the check.
	for _, existing := range records {
		if existing.Field(store.FieldServiceDate) != req.ServiceDate {
			continue
		}
		existingRole, parseErr := roles.Parse(existing.Field(store.FieldRole))
		if parseErr != nil || existingRole != role {
			continue
		}
		c.logger.Info("Signup rejected, slot taken",
			zap.String("signup_type", string(signupType)),
			zap.String("service_date", req.ServiceDate),
			zap.String("role", role.String()),
			zap.String("taken_by", existing.Field(store.FieldName)))
		return "", &ConflictError{TakenBy: existing.Field(store.FieldName)}
	}

	fields := map[string]string{
		store.FieldServiceDate: req.ServiceDate,
		store.FieldDisplayDate: req.DisplayDate,
		store.FieldName:        req.Name,
		store.FieldEmail:       req.Email,
		store.FieldPhone:       req.Phone,
		store.FieldRole:        role.String(),
		store.FieldNotes:       req.Notes,
		store.FieldSubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}

	recordID, err := c.store.Create(ctx, signupType, fields)
	if err != nil {
		c.logger.Error("Signup write failed",
			zap.String("signup_type", string(signupType)),
			zap.String("service_date", req.ServiceDate),
			zap.Error(err))
		// No retry: a failed write is surfaced, not replayed.
		c.alertOperator(ctx, "ERROR",
			fmt.Sprintf("Signup write failed for %s on %s", signupType.Label(), req.ServiceDate),
			err.Error())
		return "", fmt.Errorf("failed to create signup: %w", err)
	}

	c.invalidateType(signupType)

	c.dispatch(ctx, notify.Confirmation(signupType, req.Name, req.Email, req.DisplayDate, role.String(), c.routing))

	c.logger.Info("Signup created",
		zap.String("record_id", recordID),
		zap.String("signup_type", string(signupType)),
		zap.String("service_date", req.ServiceDate),
		zap.String("role", role.String()))

	return recordID, nil
}
