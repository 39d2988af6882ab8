package coordinate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

func validRequest() SignupRequest {
	return SignupRequest{
		SignupType:  "liturgist",
		ServiceDate: "2025-12-07",
		DisplayDate: "Sunday, December 7",
		Name:        "Pat Jones",
		Email:       "pat@gmail.com",
		Role:        "liturgist",
	}
}

func TestSignup_Success(t *testing.T) {
	c, st, dispatcher, cache := newTestCoordinator()
	ctx := context.Background()

	cache.Set("liturgist-Q4-2025", "stale")
	cache.Set("greeter-Q4-2025", "other type")

	recordID, err := c.Signup(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, recordID)

	records, err := st.List(ctx, store.Liturgist)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "liturgist", records[0].Field(store.FieldRole))
	assert.NotEmpty(t, records[0].Field(store.FieldSubmittedAt))

	// Every cached period of the mutated type is dropped; other types stay.
	_, ok := cache.Get("liturgist-Q4-2025")
	assert.False(t, ok)
	_, ok = cache.Get("greeter-Q4-2025")
	assert.True(t, ok)

	require.Len(t, dispatcher.sent, 1)
	msg := dispatcher.sent[0]
	assert.Equal(t, "pat@gmail.com", msg.To)
	assert.Equal(t, "office@ukiahumc.org", msg.Cc)
	assert.Contains(t, msg.Subject, "confirmed")
}

func TestSignup_MissingFieldsRejectedBeforeStoreAccess(t *testing.T) {
	c, st, dispatcher, _ := newTestCoordinator()

	req := validRequest()
	req.Email = ""

	_, err := c.Signup(context.Background(), req)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, st.listCalls, "validation failures must not touch the store")
	assert.Empty(t, dispatcher.sent)
}

func TestSignup_UnknownTypeAndRoleRejected(t *testing.T) {
	c, _, _, _ := newTestCoordinator()

	req := validRequest()
	req.SignupType = "usher"
	_, err := c.Signup(context.Background(), req)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	req = validRequest()
	req.Role = "head usher"
	_, err = c.Signup(context.Background(), req)
	assert.ErrorAs(t, err, &validationErr)
}

func TestSignup_DuplicateRejectedWithOccupantName(t *testing.T) {
	c, st, _, _ := newTestCoordinator()
	ctx := context.Background()

	st.add(store.Liturgist, map[string]string{
		store.FieldServiceDate: "2025-12-07",
		store.FieldRole:        "liturgist",
		store.FieldName:        "Lee Smith",
	})

	_, err := c.Signup(ctx, validRequest())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Lee Smith", conflict.TakenBy)
}

func TestSignup_CaseVariantDuplicateStillConflicts(t *testing.T) {
	c, st, _, _ := newTestCoordinator()

	// Legacy record with the capitalized role spelling.
	st.add(store.Liturgist, map[string]string{
		store.FieldServiceDate: "2025-12-07",
		store.FieldRole:        "Liturgist",
		store.FieldName:        "Lee Smith",
	})

	_, err := c.Signup(context.Background(), validRequest())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Lee Smith", conflict.TakenBy)
}

func TestSignup_DifferentRoleSameDateAllowed(t *testing.T) {
	c, st, _, _ := newTestCoordinator()

	st.add(store.Liturgist, map[string]string{
		store.FieldServiceDate: "2025-12-07",
		store.FieldRole:        "liturgist",
		store.FieldName:        "Lee Smith",
	})

	req := validRequest()
	req.Role = "backup"

	_, err := c.Signup(context.Background(), req)
	assert.NoError(t, err)
}

func TestSignup_ConcurrentSameSlotAdmitsExactlyOne(t *testing.T) {
	c, st, _, _ := newTestCoordinator()
	ctx := context.Background()

	// All requests target the same (type, date, role) slot; the per-slot
	// lock serializes them so the loser sees the winner's record in its
	// pre-check.
	const workers = 8
	var wg sync.WaitGroup
	var successes, conflicts int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.Name = fmt.Sprintf("Volunteer %d", i)
			req.Email = fmt.Sprintf("volunteer%d@gmail.com", i)

			_, err := c.Signup(ctx, req)
			var conflict *ConflictError
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case errors.As(err, &conflict):
				atomic.AddInt64(&conflicts, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes)
	assert.Equal(t, int64(workers-1), conflicts)

	records, err := st.List(ctx, store.Liturgist)
	require.NoError(t, err)
	assert.Len(t, records, 1, "the slot must hold exactly one signup")
}

func TestSignup_StoreFailureAlertsOperator(t *testing.T) {
	c, st, dispatcher, _ := newTestCoordinator()
	st.createErr = fmt.Errorf("quota exceeded")

	_, err := c.Signup(context.Background(), validRequest())
	require.Error(t, err)

	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict))

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "office@ukiahumc.org", dispatcher.sent[0].To)
	assert.Contains(t, dispatcher.sent[0].Subject, "[ERROR]")
}

func TestSignup_NotificationFailureDoesNotFailSignup(t *testing.T) {
	c, st, dispatcher, _ := newTestCoordinator()
	dispatcher.err = fmt.Errorf("smtp down")

	recordID, err := c.Signup(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, recordID)

	// The record committed even though the confirmation never went out.
	records, err := st.List(context.Background(), store.Liturgist)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSignup_FoodRoutingUsesCoordinatorCc(t *testing.T) {
	c, _, dispatcher, _ := newTestCoordinator()

	req := SignupRequest{
		SignupType:  "food",
		ServiceDate: "2025-11-01",
		DisplayDate: "Saturday, November 1",
		Name:        "Pat Jones",
		Email:       "pat@gmail.com",
		Role:        "volunteer1",
	}

	_, err := c.Signup(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, dispatcher.sent, 1)
	assert.Equal(t, "coordinator@example.com", dispatcher.sent[0].Cc)
	assert.Equal(t, "office@ukiahumc.org", dispatcher.sent[0].Bcc)
}
