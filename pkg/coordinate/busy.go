package coordinate

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// BusyVolunteer summarizes one person's existing commitments for a date.
// Advisory only: the signup path does not enforce it.
type BusyVolunteer struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Services []string `json:"services"`
}

// busyCheckTypes are the tables scanned for same-day double booking. A
// person greeting on Sunday can still read as liturgist, so the liturgist
// table stays out of the scan.
var busyCheckTypes = []store.SignupType{store.Greeter, store.Food}

// BusyVolunteers reports who is already committed to a service on the given
// date, grouped by email. A failing table degrades to partial results
// rather than failing the whole lookup.
func (c *Coordinator) BusyVolunteers(ctx context.Context, date string) []BusyVolunteer {
	type person struct {
		name     string
		services map[string]bool
	}
	byEmail := make(map[string]*person)

	for _, signupType := range busyCheckTypes {
		records, err := c.store.List(ctx, signupType)
		if err != nil {
			c.logger.Warn("Busy-volunteer scan skipped a table",
				zap.String("signup_type", string(signupType)),
				zap.Error(err))
			continue
		}

		for _, record := range records {
			if record.Field(store.FieldServiceDate) != date {
				continue
			}
			if role, parseErr := roles.Parse(record.Field(store.FieldRole)); parseErr == nil && role == roles.Attendance {
				continue
			}
			email := strings.ToLower(strings.TrimSpace(record.Field(store.FieldEmail)))
			if email == "" {
				continue
			}
			p, ok := byEmail[email]
			if !ok {
				p = &person{
					name:     record.Field(store.FieldName),
					services: make(map[string]bool),
				}
				byEmail[email] = p
			}
			p.services[signupType.Label()] = true
		}
	}

	busy := make([]BusyVolunteer, 0, len(byEmail))
	for email, p := range byEmail {
		services := make([]string, 0, len(p.services))
		for s := range p.services {
			services = append(services, s)
		}
		sort.Strings(services)
		busy = append(busy, BusyVolunteer{Email: email, Name: p.name, Services: services})
	}

	sort.Slice(busy, func(i, j int) bool { return busy[i].Email < busy[j].Email })
	return busy
}
