package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// PaymentStatus tracks whether the consultation fee has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// ConsultationType distinguishes in-person visits from video calls
type ConsultationType string

const (
	ConsultationInPerson ConsultationType = "in_person"
	ConsultationVideo    ConsultationType = "video"
)

// Appointment represents a patient's booking against one slot instance.
// Appointments are never hard-deleted; cancellation is a status change.
type Appointment struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	Date             time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeSlot         string            `gorm:"type:varchar(5);not null" json:"time_slot"` // slot start, "HH:MM"
	ConsultationType ConsultationType  `gorm:"type:varchar(20);not null" json:"consultation_type"`
	Symptoms         string            `gorm:"type:text" json:"symptoms,omitempty"`
	Notes            string            `gorm:"type:text" json:"notes,omitempty"`
	Status           AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus    PaymentStatus     `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`
	Fee              decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"fee"`
	CreatedBy        uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt        time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// SlotKey identifies the (doctor, date, time_slot) triple guarded
// against double-booking.
type SlotKey struct {
	DoctorID uuid.UUID
	Date     string // YYYY-MM-DD
	TimeSlot string // HH:MM
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.DoctorID, k.Date, k.TimeSlot)
}

// Key returns the appointment's slot key.
func (a *Appointment) Key() SlotKey {
	return SlotKey{
		DoctorID: a.DoctorID,
		Date:     a.Date.Format("2006-01-02"),
		TimeSlot: a.TimeSlot,
	}
}

// IsTerminal reports whether no further status transition is permitted.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCancelled || a.Status == AppointmentStatusCompleted
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// StartAt returns the instant the appointment's slot begins (UTC).
func (a *Appointment) StartAt() time.Time {
	minutes, err := ParseClock(a.TimeSlot)
	if err != nil {
		return a.Date
	}
	d := a.Date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, time.UTC)
}

// EndAt returns the instant the appointment's slot ends (UTC).
func (a *Appointment) EndAt() time.Time {
	return a.StartAt().Add(SlotLengthMinutes * time.Minute)
}

// CanCancel reports whether a cancellation is permitted at the given
// instant: only active appointments, and only before the slot starts.
func (a *Appointment) CanCancel(now time.Time) bool {
	return a.IsActive() && now.Before(a.StartAt())
}

// CanComplete reports whether the assigned doctor may mark the
// appointment completed at the given instant: only confirmed
// appointments whose slot has already ended.
func (a *Appointment) CanComplete(now time.Time) bool {
	return a.Status == AppointmentStatusConfirmed && !now.Before(a.EndAt())
}

// CanConfirmPayment reports whether a verified payment confirmation may
// move the appointment to confirmed/paid. Pay-later appointments are
// already confirmed but still unpaid, so both pending/unpaid and
// confirmed/unpaid qualify.
func (a *Appointment) CanConfirmPayment() bool {
	return a.IsActive() && a.PaymentStatus == PaymentStatusUnpaid
}
