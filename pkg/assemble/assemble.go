// Package assemble merges signup records from the store into the calendar
// template, producing the slot view served to clients.
package assemble

import (
	"sort"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/pkg/calendar"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/roles"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// Occupant is the read projection of a signup bound to one role slot.
type Occupant struct {
	RecordID string `json:"recordId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// AttendanceEntry is an attendance-only record attached to a slot.
type AttendanceEntry struct {
	RecordID string `json:"recordId"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status"`
}

// ServiceSlot is one assignable date with its role slots resolved.
// Constructed fresh on every assembly; never persisted.
type ServiceSlot struct {
	Date        string               `json:"date"`
	DisplayDate string               `json:"displayDate"`
	Roles       map[string]*Occupant `json:"roles"`
	Attendance  []AttendanceEntry    `json:"attendance,omitempty"`
	Notes       string               `json:"notes,omitempty"`
}

// Merge resolves each record into the template's slots. Records are matched
// by canonical date first, then by display date for historical records that
// stored the display string in the date field. Records matching neither are
// outside the requested period and stay out of this view; they still exist
// in the store.
func Merge(template []calendar.Slot, records []store.Record, logger *zap.Logger) []ServiceSlot {
	slots := make([]ServiceSlot, len(template))
	byDate := make(map[string]*ServiceSlot, len(template))
	byDisplay := make(map[string]*ServiceSlot, len(template))

	for i, t := range template {
		roleSlots := make(map[string]*Occupant, len(t.Roles))
		for _, r := range t.Roles {
			roleSlots[r.String()] = nil
		}
		slots[i] = ServiceSlot{
			Date:        t.Date,
			DisplayDate: t.DisplayDate,
			Roles:       roleSlots,
			Notes:       t.Notes,
		}
		byDate[t.Date] = &slots[i]
		byDisplay[t.DisplayDate] = &slots[i]
	}

	for _, record := range records {
		slot, ok := byDate[record.Field(store.FieldServiceDate)]
		if !ok {
			slot, ok = byDisplay[record.Field(store.FieldDisplayDate)]
		}
		if !ok {
			logger.Debug("Record outside requested period, skipping",
				zap.String("record_id", record.ID),
				zap.String("service_date", record.Field(store.FieldServiceDate)))
			continue
		}

		role, err := roles.Parse(record.Field(store.FieldRole))
		if err != nil {
			logger.Warn("Skipping record with unrecognized role",
				zap.String("record_id", record.ID),
				zap.String("role", record.Field(store.FieldRole)))
			continue
		}

		if role == roles.Attendance {
			status := record.Field(store.FieldAttendanceStatus)
			if status == "" {
				status = "yes"
			}
			slot.Attendance = append(slot.Attendance, AttendanceEntry{
				RecordID: record.ID,
				Name:     record.Field(store.FieldName),
				Email:    record.Field(store.FieldEmail),
				Status:   status,
			})
			continue
		}

		slot.Roles[role.String()] = &Occupant{
			RecordID: record.ID,
			Name:     record.Field(store.FieldName),
			Email:    record.Field(store.FieldEmail),
			Phone:    record.Field(store.FieldPhone),
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Date < slots[j].Date })
	return slots
}
