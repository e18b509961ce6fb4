package entity

import (
	"time"

	"github.com/google/uuid"
)

// SlotLengthMinutes is the platform-wide length of a bookable slot.
// Every enabled definition is carved into consecutive slots of this size.
const SlotLengthMinutes = 30

// TimeSlotDefinition is a doctor's recurring weekly availability rule:
// on a given day of week the doctor accepts appointments between
// StartTime and EndTime (24h "HH:MM", end exclusive).
type TimeSlotDefinition struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DayOfWeek   int       `gorm:"not null" json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable *bool     `gorm:"not null;default:true;index" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (TimeSlotDefinition) TableName() string {
	return "time_slot_definitions"
}

// Enabled reports whether the definition currently accepts bookings.
func (d *TimeSlotDefinition) Enabled() bool {
	return d.IsAvailable != nil && *d.IsAvailable
}

// SlotStarts enumerates the "HH:MM" start values of the discrete slots
// covered by this definition. A slot is included only when it fits
// entirely inside [StartTime, EndTime).
func (d *TimeSlotDefinition) SlotStarts() []string {
	start, err := ParseClock(d.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseClock(d.EndTime)
	if err != nil {
		return nil
	}

	var starts []string
	for m := start; m+SlotLengthMinutes <= end; m += SlotLengthMinutes {
		starts = append(starts, FormatClock(m))
	}
	return starts
}

// Overlaps reports whether two definitions for the same doctor collide:
// same day of week with intersecting time ranges.
func (d *TimeSlotDefinition) Overlaps(other *TimeSlotDefinition) bool {
	if d.DayOfWeek != other.DayOfWeek {
		return false
	}

	aStart, err := ParseClock(d.StartTime)
	if err != nil {
		return false
	}
	aEnd, err := ParseClock(d.EndTime)
	if err != nil {
		return false
	}
	bStart, err := ParseClock(other.StartTime)
	if err != nil {
		return false
	}
	bEnd, err := ParseClock(other.EndTime)
	if err != nil {
		return false
	}

	return aStart < bEnd && bStart < aEnd
}

// ParseClock converts a 24h "HH:MM" string to minutes since midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}
