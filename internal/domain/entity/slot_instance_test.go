package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSlotInstances(t *testing.T) {
	doctorID := uuid.New()
	mondayRule := TimeSlotDefinition{
		ID:          1,
		DoctorID:    doctorID,
		DayOfWeek:   1,
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: boolPtr(true),
	}

	// 2026-09-07 and 2026-09-14 are the Mondays inside this range
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	t.Run("two weeks of a single rule", func(t *testing.T) {
		instances := ProjectSlotInstances([]TimeSlotDefinition{mondayRule}, from, to, nil)

		require.Len(t, instances, 12, "6 slots per Monday, 2 Mondays")
		assert.Equal(t, "2026-09-07", instances[0].Date)
		assert.Equal(t, "09:00", instances[0].TimeSlot)
		assert.Equal(t, "09:30", instances[0].EndTime)
		assert.Equal(t, "2026-09-14", instances[6].Date)

		for _, instance := range instances {
			assert.True(t, instance.Available)
			assert.Equal(t, doctorID, instance.DoctorID)
		}
	})

	t.Run("booked slots are marked unavailable", func(t *testing.T) {
		booked := map[SlotKey]bool{
			{DoctorID: doctorID, Date: "2026-09-07", TimeSlot: "10:00"}: true,
		}

		instances := ProjectSlotInstances([]TimeSlotDefinition{mondayRule}, from, to, booked)

		require.Len(t, instances, 12, "booked slots are kept, not dropped")
		available := 0
		for _, instance := range instances {
			if instance.Available {
				available++
			} else {
				assert.Equal(t, "2026-09-07", instance.Date)
				assert.Equal(t, "10:00", instance.TimeSlot)
			}
		}
		assert.Equal(t, 11, available)
	})

	t.Run("disabled rules produce nothing", func(t *testing.T) {
		disabled := mondayRule
		disabled.IsAvailable = boolPtr(false)

		instances := ProjectSlotInstances([]TimeSlotDefinition{disabled}, from, to, nil)
		assert.Empty(t, instances)
		assert.NotNil(t, instances)
	})

	t.Run("range without matching weekday", func(t *testing.T) {
		// Tuesday through Thursday, the rule is for Monday
		instances := ProjectSlotInstances(
			[]TimeSlotDefinition{mondayRule},
			time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
			nil,
		)
		assert.Empty(t, instances)
	})

	t.Run("single day range is inclusive", func(t *testing.T) {
		instances := ProjectSlotInstances([]TimeSlotDefinition{mondayRule}, from, from, nil)
		assert.Len(t, instances, 6)
	})

	t.Run("multiple rules on the same day", func(t *testing.T) {
		afternoon := TimeSlotDefinition{
			ID:          2,
			DoctorID:    doctorID,
			DayOfWeek:   1,
			StartTime:   "14:00",
			EndTime:     "15:00",
			IsAvailable: boolPtr(true),
		}

		instances := ProjectSlotInstances([]TimeSlotDefinition{mondayRule, afternoon}, from, from, nil)
		assert.Len(t, instances, 8)
	})

	t.Run("intra-day clock is ignored for range bounds", func(t *testing.T) {
		lateFrom := time.Date(2026, 9, 7, 23, 50, 0, 0, time.UTC)
		instances := ProjectSlotInstances([]TimeSlotDefinition{mondayRule}, lateFrom, lateFrom, nil)
		assert.Len(t, instances, 6)
	})
}
