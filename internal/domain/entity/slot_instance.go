package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotInstance is one concrete, dated occurrence derived from a
// TimeSlotDefinition. Instances are computed on demand and never stored.
type SlotInstance struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`       // YYYY-MM-DD
	TimeSlot  string    `json:"time_slot"`  // slot start, HH:MM
	EndTime   string    `json:"end_time"`   // slot end, HH:MM
	Available bool      `json:"available"`  // false when an active appointment holds the slot
}

// Key returns the slot key guarded by the booking conflict check.
func (s *SlotInstance) Key() SlotKey {
	return SlotKey{DoctorID: s.DoctorID, Date: s.Date, TimeSlot: s.TimeSlot}
}

// ProjectSlotInstances projects a doctor's enabled weekly definitions
// over the inclusive date range [from, to]. Instances whose slot key
// appears in booked are returned with Available=false rather than
// dropped, so callers can render fully booked days as disabled.
//
// The projection is pure: same inputs, same output, no state touched.
func ProjectSlotInstances(defs []TimeSlotDefinition, from, to time.Time, booked map[SlotKey]bool) []SlotInstance {
	byDay := make(map[int][]TimeSlotDefinition)
	for _, def := range defs {
		if !def.Enabled() {
			continue
		}
		byDay[def.DayOfWeek] = append(byDay[def.DayOfWeek], def)
	}

	instances := []SlotInstance{}
	for date := dateOnly(from); !date.After(dateOnly(to)); date = date.AddDate(0, 0, 1) {
		defsForDay := byDay[int(date.Weekday())]
		if len(defsForDay) == 0 {
			continue
		}

		dateStr := date.Format("2006-01-02")
		for _, def := range defsForDay {
			for _, start := range def.SlotStarts() {
				startMin, err := ParseClock(start)
				if err != nil {
					continue
				}
				instance := SlotInstance{
					DoctorID: def.DoctorID,
					Date:     dateStr,
					TimeSlot: start,
					EndTime:  FormatClock(startMin + SlotLengthMinutes),
				}
				instance.Available = !booked[instance.Key()]
				instances = append(instances, instance)
			}
		}
	}

	return instances
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
