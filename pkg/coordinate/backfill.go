package coordinate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Backfill promotes later volunteers forward after an earlier slot is
// vacated, keeping the volunteer1..volunteer4 numbering gap-free. Each
// promotion is an independent role update against a store with no
// multi-record transactions: a partial failure cannot be prevented, only
// detected by the terminal verification pass, which alerts the operator and
// leaves the data for manual correction. Automatic repair is deliberately
// absent; it would risk masking data loss.
func (c *Coordinator) Backfill(ctx context.Context, signupType store.SignupType, serviceDate string, cancelled roles.Role) {
	start := roles.VolunteerIndex(cancelled)
	if start < 0 || !roles.PromotableHead(cancelled) {
		return
	}

	occupants, err := c.volunteersOn(ctx, signupType, serviceDate)
	if err != nil {
		c.logger.Error("Backfill fetch failed",
			zap.String("signup_type", string(signupType)),
			zap.String("service_date", serviceDate),
			zap.Error(err))
		return
	}

	sequence := roles.VolunteerSequence()
	for i := start; i < len(sequence)-1; i++ {
		target, source := sequence[i], sequence[i+1]
		record, occupied := occupants[source]
		if !occupied {
			// Nothing to promote from this position; not an error.
			continue
		}

		err := c.store.Update(ctx, signupType, record.ID, map[string]string{
			store.FieldRole: target.String(),
		})
		if err != nil {
			c.logger.Error("Backfill promotion failed",
				zap.String("record_id", record.ID),
				zap.String("from", source.String()),
				zap.String("to", target.String()),
				zap.Error(err))
			// Keep going; the verification pass below reports any gap
			// this leaves behind.
			continue
		}

		c.logger.Info("Backfill promoted volunteer",
			zap.String("record_id", record.ID),
			zap.String("from", source.String()),
			zap.String("to", target.String()))
	}

	c.verifyBackfill(ctx, signupType, serviceDate, cancelled)
}

// verifyBackfill re-reads the date's volunteers and checks that no earlier
// position is empty while a later one is filled.
func (c *Coordinator) verifyBackfill(ctx context.Context, signupType store.SignupType, serviceDate string, cancelled roles.Role) {
	occupants, err := c.volunteersOn(ctx, signupType, serviceDate)
	if err != nil {
		c.logger.Error("Backfill verification fetch failed",
			zap.String("service_date", serviceDate),
			zap.Error(err))
		return
	}

	gaps := findGaps(occupants)
	if len(gaps) == 0 {
		c.logger.Info("Backfill verified gap-free",
			zap.String("signup_type", string(signupType)),
			zap.String("service_date", serviceDate))
		return
	}

	detail := fmt.Sprintf(
		"signup type: %s\nservice date: %s\ncancelled role: %s\ngaps: %v\nManual correction required; no automatic repair is attempted.",
		signupType, serviceDate, cancelled, gaps)

	c.logger.Error("Backfill left a gap in the volunteer sequence",
		zap.String("signup_type", string(signupType)),
		zap.String("service_date", serviceDate),
		zap.Strings("gaps", gaps))

	c.alertOperator(ctx, "CRITICAL",
		fmt.Sprintf("Backfill gap on %s %s", signupType.Label(), serviceDate),
		detail)
}

// findGaps reports later volunteer positions occupied while an earlier one
// is empty.
func findGaps(occupants map[roles.Role]store.Record) []string {
	var gaps []string
	sequence := roles.VolunteerSequence()
	for i := 1; i < len(sequence); i++ {
		_, laterFilled := occupants[sequence[i]]
		_, earlierFilled := occupants[sequence[i-1]]
		if laterFilled && !earlierFilled {
			gaps = append(gaps, fmt.Sprintf("%s present without %s", sequence[i], sequence[i-1]))
		}
	}
	return gaps
}

// volunteersOn maps each occupied volunteer role on a date to its record.
func (c *Coordinator) volunteersOn(ctx context.Context, signupType store.SignupType, serviceDate string) (map[roles.Role]store.Record, error) {
	records, err := c.store.List(ctx, signupType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s signups: %w", signupType, err)
	}

	occupants := make(map[roles.Role]store.Record)
	for _, record := range records {
		if record.Field(store.FieldServiceDate) != serviceDate {
			continue
		}
		role, parseErr := roles.Parse(record.Field(store.FieldRole))
		if parseErr != nil || roles.VolunteerIndex(role) < 0 {
			continue
		}
		occupants[role] = record
	}

	return occupants, nil
}
