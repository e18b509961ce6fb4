package repository

import (
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error)

	// FindActiveBySlot returns the pending/confirmed appointment holding
	// the (doctor, date, time_slot) triple, or nil when the slot is free.
	FindActiveBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)

	// FindActiveInRange returns the pending/confirmed appointments of a
	// doctor within [from, to], ordered by date then slot.
	FindActiveInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)

	// UpdateStatusIf atomically moves an appointment from an expected
	// prior status to a new one, optionally updating payment status in
	// the same write. Returns affected rows: 1 = transition applied,
	// 0 = the appointment was no longer in the expected status.
	UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, payment *entity.PaymentStatus) (int64, error)
}
