package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTimeRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected error
	}{
		{"valid range", "09:00", "12:00", nil},
		{"single slot range", "09:00", "09:30", nil},
		{"malformed start", "9am", "12:00", ErrInvalidTimeFormat},
		{"malformed end", "09:00", "noon", ErrInvalidTimeFormat},
		{"start equals end", "09:00", "09:00", ErrInvalidTimeRange},
		{"start after end", "12:00", "09:00", ErrInvalidTimeRange},
		{"shorter than one slot", "09:00", "09:15", ErrSlotRuleTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTimeRange(tt.start, tt.end)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}
