package repository

import (
	"errors"
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	domainRepo "github.com/aladdinbruv/docproche-sub001/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Doctor.User").Where("patient_id = ?", patientID)
	query = applyFilter(query, filter)
	err := query.Order("date ASC, time_slot ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Preload("Patient.User").Where("doctor_id = ?", doctorID)
	query = applyFilter(query, filter)
	err := query.Order("date ASC, time_slot ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where(
		"doctor_id = ? AND date = ? AND time_slot = ? AND status IN ?",
		doctorID, date.Format("2006-01-02"), timeSlot,
		[]entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed},
	).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveInRange(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where(
		"doctor_id = ? AND date >= ? AND date <= ? AND status IN ?",
		doctorID, from.Format("2006-01-02"), to.Format("2006-01-02"),
		[]entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed},
	).Order("date ASC, time_slot ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatusIf performs the compare-and-swap transition write. The
// status equality predicate makes racing transitions lose cleanly:
// whichever update runs second matches zero rows.
func (r *appointmentRepository) UpdateStatusIf(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus, payment *entity.PaymentStatus) (int64, error) {
	updates := map[string]interface{}{"status": to}
	if payment != nil {
		updates["payment_status"] = *payment
	}

	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func applyFilter(query *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.StartAt != "" {
		query = query.Where("date >= ?", filter.StartAt)
	}
	if filter.EndAt != "" {
		query = query.Where("date <= ?", filter.EndAt)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}
