package repository

import (
	"errors"

	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	domainRepo "github.com/aladdinbruv/docproche-sub001/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRecordRepository struct{}

func NewPaymentRecordRepository() domainRepo.PaymentRecordRepository {
	return &paymentRecordRepository{}
}

func (r *paymentRecordRepository) Create(db *gorm.DB, record *entity.PaymentRecord) error {
	return db.Create(record).Error
}

func (r *paymentRecordRepository) FindByTransactionID(db *gorm.DB, transactionID string) (*entity.PaymentRecord, error) {
	var record entity.PaymentRecord
	err := db.Where("transaction_id = ?", transactionID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *paymentRecordRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.PaymentRecord, error) {
	var records []entity.PaymentRecord
	err := db.Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
