package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testAppointment(status AppointmentStatus, payment PaymentStatus) *Appointment {
	return &Appointment{
		ID:            uuid.New(),
		DoctorID:      uuid.New(),
		PatientID:     uuid.New(),
		Date:          time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), // a Monday
		TimeSlot:      "10:00",
		Status:        status,
		PaymentStatus: payment,
	}
}

func TestStartAtEndAt(t *testing.T) {
	a := testAppointment(AppointmentStatusPending, PaymentStatusUnpaid)

	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), a.StartAt())
	assert.Equal(t, time.Date(2026, 9, 7, 10, 30, 0, 0, time.UTC), a.EndAt())
}

func TestIsActiveIsTerminal(t *testing.T) {
	tests := []struct {
		status   AppointmentStatus
		active   bool
		terminal bool
	}{
		{AppointmentStatusPending, true, false},
		{AppointmentStatusConfirmed, true, false},
		{AppointmentStatusCancelled, false, true},
		{AppointmentStatusCompleted, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := testAppointment(tt.status, PaymentStatusUnpaid)
			assert.Equal(t, tt.active, a.IsActive())
			assert.Equal(t, tt.terminal, a.IsTerminal())
		})
	}
}

func TestCanCancel(t *testing.T) {
	a := testAppointment(AppointmentStatusConfirmed, PaymentStatusPaid)
	beforeStart := a.StartAt().Add(-time.Hour)
	afterStart := a.StartAt().Add(time.Minute)

	assert.True(t, a.CanCancel(beforeStart))
	assert.False(t, a.CanCancel(a.StartAt()), "cancellation closes at the slot start")
	assert.False(t, a.CanCancel(afterStart))

	pending := testAppointment(AppointmentStatusPending, PaymentStatusUnpaid)
	assert.True(t, pending.CanCancel(beforeStart))

	for _, status := range []AppointmentStatus{AppointmentStatusCancelled, AppointmentStatusCompleted} {
		done := testAppointment(status, PaymentStatusPaid)
		assert.False(t, done.CanCancel(beforeStart), "terminal appointments cannot be cancelled")
	}
}

func TestCanComplete(t *testing.T) {
	a := testAppointment(AppointmentStatusConfirmed, PaymentStatusPaid)

	assert.False(t, a.CanComplete(a.StartAt()), "slot still in progress")
	assert.False(t, a.CanComplete(a.EndAt().Add(-time.Minute)))
	assert.True(t, a.CanComplete(a.EndAt()))
	assert.True(t, a.CanComplete(a.EndAt().Add(time.Hour)))

	pending := testAppointment(AppointmentStatusPending, PaymentStatusUnpaid)
	assert.False(t, pending.CanComplete(pending.EndAt().Add(time.Hour)), "unpaid pending appointments are never completable")
}

func TestCanConfirmPayment(t *testing.T) {
	assert.True(t, testAppointment(AppointmentStatusPending, PaymentStatusUnpaid).CanConfirmPayment())
	assert.True(t, testAppointment(AppointmentStatusConfirmed, PaymentStatusUnpaid).CanConfirmPayment(), "pay-later bookings are confirmed but unpaid")
	assert.False(t, testAppointment(AppointmentStatusConfirmed, PaymentStatusPaid).CanConfirmPayment())
	assert.False(t, testAppointment(AppointmentStatusCancelled, PaymentStatusUnpaid).CanConfirmPayment())
	assert.False(t, testAppointment(AppointmentStatusCompleted, PaymentStatusPaid).CanConfirmPayment())
}

func TestSlotKey(t *testing.T) {
	a := testAppointment(AppointmentStatusPending, PaymentStatusUnpaid)
	key := a.Key()

	assert.Equal(t, a.DoctorID, key.DoctorID)
	assert.Equal(t, "2026-09-07", key.Date)
	assert.Equal(t, "10:00", key.TimeSlot)
	assert.Equal(t, a.DoctorID.String()+":2026-09-07:10:00", key.String())
}
