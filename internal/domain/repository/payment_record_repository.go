package repository

import (
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRecordRepository interface {
	Create(db *gorm.DB, record *entity.PaymentRecord) error
	FindByTransactionID(db *gorm.DB, transactionID string) (*entity.PaymentRecord, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.PaymentRecord, error)
}
