// Package calendar generates the template of assignable service slots for a
// period. It is pure: no store access, no logging, deterministic for a given
// period token.
package calendar

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

const dateLayout = "2006-01-02"

// Slot is one assignable service date with its role slots, before any
// signups are merged in.
type Slot struct {
	Date        string       // canonical ISO date, the join key
	DisplayDate string       // human-readable rendering, legacy join fallback
	Roles       []roles.Role // role slots available on this date
	Notes       string       // liturgical annotation, derived
}

// Period is a quarter of a calendar year, e.g. Q4-2025.
type Period struct {
	Quarter int
	Year    int
}

var periodPattern = regexp.MustCompile(`^Q([1-4])-(\d{4})$`)

// ParsePeriod parses a "Q{1-4}-{year}" token. Malformed tokens fail closed
// to the current quarter so slot views always have something to render.
func ParsePeriod(token string) Period {
	return parsePeriodAt(token, time.Now())
}

func parsePeriodAt(token string, now time.Time) Period {
	m := periodPattern.FindStringSubmatch(token)
	if m == nil {
		return Period{
			Quarter: (int(now.Month())-1)/3 + 1,
			Year:    now.Year(),
		}
	}
	quarter, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return Period{Quarter: quarter, Year: year}
}

// String renders the canonical period token.
func (p Period) String() string {
	return fmt.Sprintf("Q%d-%d", p.Quarter, p.Year)
}

// Bounds returns the first day of the period's first month and the last day
// of its last month.
func (p Period) Bounds() (time.Time, time.Time) {
	firstMonth := time.Month((p.Quarter-1)*3 + 1)
	start := time.Date(p.Year, firstMonth, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start, end
}

// Contains reports whether t falls within the period's month range.
func (p Period) Contains(t time.Time) bool {
	start, end := p.Bounds()
	return !t.Before(start) && !t.After(end)
}

// weeklyRecurrence is the recurrence rule for Sunday service types.
const weeklyRecurrence = "FREQ=WEEKLY;BYDAY=SU"

// foodDates is the enumerated run of Saturday food distribution dates.
// Filtered by the requested period's year; out-of-range periods get an
// empty template.
var foodDates = []string{
	"2025-11-01",
	"2025-11-15",
	"2025-12-06",
	"2025-12-20",
	"2026-01-03",
	"2026-01-17",
	"2026-02-07",
	"2026-02-21",
}

// Template returns the ordered slot template for a signup type and period.
// Unknown signup types get an empty template.
func Template(signupType store.SignupType, period Period) []Slot {
	var slots []Slot

	switch signupType {
	case store.Liturgist:
		slots = weeklySlots(period, []roles.Role{roles.Liturgist, roles.Backup})
		slots = appendChristmasEve(slots, period, []roles.Role{
			roles.Liturgist, roles.Liturgist2, roles.Backup, roles.Backup2,
		})
		annotateAdvent(slots, period.Year)
	case store.Greeter:
		slots = weeklySlots(period, []roles.Role{roles.Greeter1, roles.Greeter2})
		slots = appendChristmasEve(slots, period, []roles.Role{roles.Greeter1, roles.Greeter2})
	case store.Food:
		for _, d := range foodDates {
			day, err := time.Parse(dateLayout, d)
			if err != nil || day.Year() != period.Year {
				continue
			}
			slots = append(slots, Slot{
				Date:        d,
				DisplayDate: day.Format("Monday, January 2"),
				Roles:       roles.VolunteerSequence(),
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Date < slots[j].Date })
	return slots
}

// weeklySlots expands the Sunday recurrence across the period's months.
func weeklySlots(period Period, roleSlots []roles.Role) []Slot {
	start, end := period.Bounds()

	rule, err := rrule.StrToRRule(weeklyRecurrence)
	if err != nil {
		// The recurrence is a compile-time constant; an error here means
		// the constant itself is broken.
		panic(fmt.Sprintf("invalid weekly recurrence: %v", err))
	}
	rule.DTStart(start)

	var slots []Slot
	for _, day := range rule.Between(start, end, true) {
		slots = append(slots, Slot{
			Date:        day.Format(dateLayout),
			DisplayDate: day.Format("Monday, January 2"),
			Roles:       append([]roles.Role(nil), roleSlots...),
		})
	}
	return slots
}

// appendChristmasEve injects the Dec 24 service when it falls inside the
// period. Christmas Eve carries its own role shape (the four-role liturgist
// override) and a distinct display label.
func appendChristmasEve(slots []Slot, period Period, roleSlots []roles.Role) []Slot {
	eve := time.Date(period.Year, time.December, 24, 0, 0, 0, 0, time.UTC)
	if !period.Contains(eve) {
		return slots
	}
	return append(slots, Slot{
		Date:        eve.Format(dateLayout),
		DisplayDate: eve.Format("Monday, January 2") + " (Christmas Eve)",
		Roles:       append([]roles.Role(nil), roleSlots...),
		Notes:       "Christmas Eve candlelight service",
	})
}

// AdventSundays returns the four Advent Sundays for a year, earliest first.
// The fourth is the Sunday on or before Dec 25; the rest step back 7 days.
func AdventSundays(year int) [4]time.Time {
	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)
	fourth := christmas.AddDate(0, 0, -int(christmas.Weekday()))

	var sundays [4]time.Time
	for i := 0; i < 4; i++ {
		sundays[i] = fourth.AddDate(0, 0, -7*(3-i))
	}
	return sundays
}

// annotateAdvent attaches cumulative candle-count notes to the Advent
// Sundays present in the template.
func annotateAdvent(slots []Slot, year int) {
	advent := AdventSundays(year)
	for i := range slots {
		for week, sunday := range advent {
			if slots[i].Date == sunday.Format(dateLayout) {
				candles := week + 1
				noun := "candles"
				if candles == 1 {
					noun = "candle"
				}
				slots[i].Notes = fmt.Sprintf("Advent %d: light %d %s", candles, candles, noun)
			}
		}
	}
}
