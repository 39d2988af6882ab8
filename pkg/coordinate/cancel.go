package coordinate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/notify"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Cancel deletes a signup record. Cancelling a record that no longer exists
// is an idempotent success: the caller's goal state already holds. On a
// successful delete the cache is invalidated, backfill runs when the
// cancelled role heads a promotable volunteer sequence, and the person is
// notified.
func (c *Coordinator) Cancel(ctx context.Context, signupType store.SignupType, recordID string) error {
	record, err := c.store.Find(ctx, signupType, recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.logger.Info("Cancel target already gone",
				zap.String("record_id", recordID),
				zap.String("signup_type", string(signupType)))
			return nil
		}
		c.alertOperator(ctx, "ERROR",
			fmt.Sprintf("Cancel lookup failed for %s", signupType.Label()),
			err.Error())
		return fmt.Errorf("failed to look up signup %s: %w", recordID, err)
	}

	if err := c.store.Delete(ctx, signupType, recordID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		c.logger.Error("Signup delete failed",
			zap.String("record_id", recordID),
			zap.Error(err))
		c.alertOperator(ctx, "ERROR",
			fmt.Sprintf("Cancel delete failed for %s record %s", signupType.Label(), recordID),
			err.Error())
		return fmt.Errorf("failed to delete signup %s: %w", recordID, err)
	}

	c.invalidateType(signupType)

	serviceDate := record.Field(store.FieldServiceDate)
	if role, parseErr := roles.Parse(record.Field(store.FieldRole)); parseErr == nil && roles.PromotableHead(role) {
		c.Backfill(ctx, signupType, serviceDate, role)
	}

	c.dispatch(ctx, notify.Cancellation(
		signupType,
		record.Field(store.FieldName),
		record.Field(store.FieldEmail),
		record.Field(store.FieldDisplayDate),
		record.Field(store.FieldRole),
		c.routing))

	c.logger.Info("Signup cancelled",
		zap.String("record_id", recordID),
		zap.String("signup_type", string(signupType)),
		zap.String("service_date", serviceDate))

	return nil
}
