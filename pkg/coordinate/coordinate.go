// Package coordinate orchestrates signup and cancellation requests against
// the external store: duplicate pre-checks, cache invalidation, backfill
// promotion, and notification dispatch.
package coordinate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/assemble"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/calendar"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/notify"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/slotcache"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Coordinator handles signup mutations and cached slot views. The store
// offers no conditional writes, so the duplicate pre-check and the backfill
// promotions are best-effort; a per-slot mutex shrinks (but cannot
// eliminate) the check-then-act window for concurrent requests hitting the
// same instance. Requests on other instances still race.
type Coordinator struct {
	store      store.SignupStore
	cache      *slotcache.Cache
	dispatcher notify.Dispatcher
	routing    notify.Routing
	logger     *zap.Logger

	slotLocks slotLocks
}

// New wires a coordinator. All dependencies are injected; tests pass fakes.
func New(st store.SignupStore, cache *slotcache.Cache, dispatcher notify.Dispatcher, routing notify.Routing, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		store:      st,
		cache:      cache,
		dispatcher: dispatcher,
		routing:    routing,
		logger:     logger,
	}
}

// SlotView returns the merged slot view for a signup type and period token,
// serving from cache when fresh. Malformed period tokens resolve to the
// current quarter rather than erroring.
func (c *Coordinator) SlotView(ctx context.Context, signupType store.SignupType, periodToken string) ([]assemble.ServiceSlot, error) {
	period := calendar.ParsePeriod(periodToken)
	key := slotcache.Key(signupType, period.String())

	if cached, ok := c.cache.Get(key); ok {
		if slots, ok := cached.([]assemble.ServiceSlot); ok {
			c.logger.Debug("Slot view served from cache", zap.String("key", key))
			return slots, nil
		}
	}

	template := calendar.Template(signupType, period)

	records, err := c.store.List(ctx, signupType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s signups: %w", signupType, err)
	}

	slots := assemble.Merge(template, records, c.logger)
	c.cache.Set(key, slots)

	return slots, nil
}

// TemplateView returns the bare calendar template as a slot view, used as
// the degraded response when the store is unreachable.
func (c *Coordinator) TemplateView(signupType store.SignupType, periodToken string) []assemble.ServiceSlot {
	period := calendar.ParsePeriod(periodToken)
	return assemble.Merge(calendar.Template(signupType, period), nil, c.logger)
}

// invalidateType drops every cached period of a signup type. The mutated
// record's period is not re-derived; dropping the type's whole prefix is
// cheaper than parsing dates back into quarters.
func (c *Coordinator) invalidateType(signupType store.SignupType) {
	prefix := string(signupType) + "-"
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Invalidate(key)
		}
	}
}

// dispatch sends a notification and logs failures. Delivery is
// fire-and-forget relative to the store mutation that triggered it: the
// mutation has already committed and is never rolled back here.
func (c *Coordinator) dispatch(ctx context.Context, msg notify.Message) {
	if err := c.dispatcher.Send(ctx, msg); err != nil {
		c.logger.Error("Notification dispatch failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
	}
}

// alertOperator sends a severity-tagged notification to the system
// operator. Dispatch failures are logged only; escalating an alert about a
// failed alert would regress forever.
func (c *Coordinator) alertOperator(ctx context.Context, severity, summary, detail string) {
	c.dispatch(ctx, notify.OperatorAlert(severity, summary, detail, c.routing))
}
