// Package roles defines the closed set of signup roles and the single
// parser that maps legacy free-form role strings onto it.
package roles

import (
	"fmt"
	"strings"
)

// Role identifies one assignable position on a service date.
type Role string

const (
	Liturgist  Role = "liturgist"
	Liturgist2 Role = "liturgist2"
	Backup     Role = "backup"
	Backup2    Role = "backup2"
	Greeter1   Role = "greeter1"
	Greeter2   Role = "greeter2"
	Volunteer1 Role = "volunteer1"
	Volunteer2 Role = "volunteer2"
	Volunteer3 Role = "volunteer3"
	Volunteer4 Role = "volunteer4"
	Attendance Role = "attendance"
)

// aliases maps legacy spellings (already lower-cased and trimmed) onto
// canonical roles. Historical records used capitalized and long-form names.
var aliases = map[string]Role{
	"liturgist":        Liturgist,
	"liturgist2":       Liturgist2,
	"second liturgist": Liturgist2,
	"backup":           Backup,
	"backup liturgist": Backup,
	"backup2":          Backup2,
	"second backup":    Backup2,
	"greeter1":         Greeter1,
	"greeter2":         Greeter2,
	"volunteer1":       Volunteer1,
	"volunteer2":       Volunteer2,
	"volunteer3":       Volunteer3,
	"volunteer4":       Volunteer4,
	"attendance":       Attendance,
}

// Parse resolves a stored role string to its canonical Role.
// Matching is case-insensitive and whitespace-tolerant.
func Parse(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if role, ok := aliases[normalized]; ok {
		return role, nil
	}
	return "", fmt.Errorf("unrecognized role %q", s)
}

// String returns the canonical token used in slot maps and new records.
func (r Role) String() string {
	return string(r)
}

// volunteerOrder is the promotion sequence for food distribution slots.
var volunteerOrder = []Role{Volunteer1, Volunteer2, Volunteer3, Volunteer4}

// VolunteerSequence returns the ordered volunteer roles, first to last.
func VolunteerSequence() []Role {
	seq := make([]Role, len(volunteerOrder))
	copy(seq, volunteerOrder)
	return seq
}

// VolunteerIndex returns the zero-based position of r in the volunteer
// sequence, or -1 if r is not a volunteer role.
func VolunteerIndex(r Role) int {
	for i, v := range volunteerOrder {
		if v == r {
			return i
		}
	}
	return -1
}

// PromotableHead reports whether cancelling r leaves a gap that later
// volunteers should be promoted into. Volunteer3 and volunteer4 are already
// at the tail, so cancelling them needs no promotion.
func PromotableHead(r Role) bool {
	return r == Volunteer1 || r == Volunteer2
}
