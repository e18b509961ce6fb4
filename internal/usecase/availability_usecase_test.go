package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDateRange(t *testing.T) {
	t.Run("explicit bounds", func(t *testing.T) {
		from, to, err := resolveDateRange("2026-09-01", "2026-09-15", 31)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("default end is one month after start", func(t *testing.T) {
		from, to, err := resolveDateRange("2026-09-01", "", 31)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), to)
	})

	t.Run("default start is today", func(t *testing.T) {
		from, to, err := resolveDateRange("", "", 31)
		require.NoError(t, err)

		now := time.Now().UTC()
		assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), from)
		assert.Equal(t, from.AddDate(0, 1, 0), to)
	})

	t.Run("malformed start date", func(t *testing.T) {
		_, _, err := resolveDateRange("01-09-2026", "", 31)
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("malformed end date", func(t *testing.T) {
		_, _, err := resolveDateRange("2026-09-01", "next week", 31)
		assert.ErrorIs(t, err, ErrInvalidDateFormat)
	})

	t.Run("start after end", func(t *testing.T) {
		_, _, err := resolveDateRange("2026-09-15", "2026-09-01", 31)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("range beyond the horizon", func(t *testing.T) {
		_, _, err := resolveDateRange("2026-09-01", "2026-10-03", 31)
		assert.ErrorIs(t, err, ErrRangeTooLarge)
	})

	t.Run("range exactly at the horizon", func(t *testing.T) {
		_, _, err := resolveDateRange("2026-09-01", "2026-10-02", 31)
		assert.NoError(t, err)
	})

	t.Run("same day range", func(t *testing.T) {
		from, to, err := resolveDateRange("2026-09-01", "2026-09-01", 31)
		require.NoError(t, err)
		assert.Equal(t, from, to)
	})
}
