package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestSlotStarts(t *testing.T) {
	tests := []struct {
		name      string
		startTime string
		endTime   string
		expected  []string
	}{
		{
			name:      "three hour morning block",
			startTime: "09:00",
			endTime:   "12:00",
			expected:  []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:      "single slot",
			startTime: "14:00",
			endTime:   "14:30",
			expected:  []string{"14:00"},
		},
		{
			name:      "trailing partial slot is dropped",
			startTime: "09:00",
			endTime:   "10:15",
			expected:  []string{"09:00", "09:30"},
		},
		{
			name:      "range shorter than one slot",
			startTime: "09:00",
			endTime:   "09:15",
			expected:  nil,
		},
		{
			name:      "invalid start time",
			startTime: "banana",
			endTime:   "10:00",
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := &TimeSlotDefinition{StartTime: tt.startTime, EndTime: tt.endTime}
			assert.Equal(t, tt.expected, def.SlotStarts())
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := &TimeSlotDefinition{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"}

	tests := []struct {
		name     string
		other    *TimeSlotDefinition
		expected bool
	}{
		{
			name:     "different day never overlaps",
			other:    &TimeSlotDefinition{DayOfWeek: 2, StartTime: "09:00", EndTime: "12:00"},
			expected: false,
		},
		{
			name:     "identical range overlaps",
			other:    &TimeSlotDefinition{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			expected: true,
		},
		{
			name:     "partial intersection overlaps",
			other:    &TimeSlotDefinition{DayOfWeek: 1, StartTime: "11:00", EndTime: "14:00"},
			expected: true,
		},
		{
			name:     "contained range overlaps",
			other:    &TimeSlotDefinition{DayOfWeek: 1, StartTime: "10:00", EndTime: "11:00"},
			expected: true,
		},
		{
			name:     "adjacent ranges do not overlap",
			other:    &TimeSlotDefinition{DayOfWeek: 1, StartTime: "12:00", EndTime: "15:00"},
			expected: false,
		},
		{
			name:     "earlier adjacent range does not overlap",
			other:    &TimeSlotDefinition{DayOfWeek: 1, StartTime: "07:00", EndTime: "09:00"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Overlaps(tt.other))
			assert.Equal(t, tt.expected, tt.other.Overlaps(base))
		})
	}
}

func TestEnabled(t *testing.T) {
	assert.True(t, (&TimeSlotDefinition{IsAvailable: boolPtr(true)}).Enabled())
	assert.False(t, (&TimeSlotDefinition{IsAvailable: boolPtr(false)}).Enabled())
	assert.False(t, (&TimeSlotDefinition{}).Enabled())
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 570, minutes)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("")
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:30", FormatClock(570))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "23:30", FormatClock(1410))
}
