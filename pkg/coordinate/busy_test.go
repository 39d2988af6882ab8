package coordinate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

func TestBusyVolunteers_GroupsByEmail(t *testing.T) {
	c, st, _, _ := newTestCoordinator()

	st.add(store.Greeter, map[string]string{
		store.FieldServiceDate: "2025-11-01",
		store.FieldRole:        "greeter1",
		store.FieldName:        "Pat Jones",
		store.FieldEmail:       "Pat@Example.com",
	})
	st.add(store.Food, map[string]string{
		store.FieldServiceDate: "2025-11-01",
		store.FieldRole:        "volunteer1",
		store.FieldName:        "Pat Jones",
		store.FieldEmail:       " pat@example.com ",
	})
	st.add(store.Food, map[string]string{
		store.FieldServiceDate: "2025-11-01",
		store.FieldRole:        "volunteer2",
		store.FieldName:        "Lee Smith",
		store.FieldEmail:       "lee@example.com",
	})
	// Different date, should not appear.
	st.add(store.Food, map[string]string{
		store.FieldServiceDate: "2025-11-15",
		store.FieldRole:        "volunteer1",
		store.FieldName:        "Dana",
		store.FieldEmail:       "dana@example.com",
	})

	busy := c.BusyVolunteers(context.Background(), "2025-11-01")

	require.Len(t, busy, 2)
	assert.Equal(t, "lee@example.com", busy[0].Email)
	assert.Equal(t, []string{"Food Distribution"}, busy[0].Services)
	assert.Equal(t, "pat@example.com", busy[1].Email)
	assert.Equal(t, []string{"Food Distribution", "Greeter"}, busy[1].Services)
}

func TestBusyVolunteers_AttendanceAndEmptyEmailSkipped(t *testing.T) {
	c, st, _, _ := newTestCoordinator()

	st.add(store.Greeter, map[string]string{
		store.FieldServiceDate: "2025-11-01",
		store.FieldRole:        "Attendance",
		store.FieldName:        "Kim",
		store.FieldEmail:       "kim@example.com",
	})
	st.add(store.Food, map[string]string{
		store.FieldServiceDate: "2025-11-01",
		store.FieldRole:        "volunteer1",
		store.FieldName:        "No Email",
	})

	busy := c.BusyVolunteers(context.Background(), "2025-11-01")
	assert.Empty(t, busy)
}

func TestBusyVolunteers_PartialTableFailureDegrades(t *testing.T) {
	c, st, _, _ := newTestCoordinator()

	st.add(store.Food, map[string]string{
		store.FieldServiceDate: "2025-11-01",
		store.FieldRole:        "volunteer1",
		store.FieldName:        "Pat Jones",
		store.FieldEmail:       "pat@example.com",
	})
	st.listErr[store.Greeter] = fmt.Errorf("sheets unavailable")

	busy := c.BusyVolunteers(context.Background(), "2025-11-01")

	require.Len(t, busy, 1)
	assert.Equal(t, "pat@example.com", busy[0].Email)
}

func TestBusyVolunteers_NoMatchesIsBenign(t *testing.T) {
	c, _, _, _ := newTestCoordinator()

	busy := c.BusyVolunteers(context.Background(), "2025-11-01")
	assert.Empty(t, busy)
}
