package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentRecordStatus mirrors the payment provider's outcome
type PaymentRecordStatus string

const (
	PaymentRecordPending    PaymentRecordStatus = "pending"
	PaymentRecordSuccessful PaymentRecordStatus = "successful"
	PaymentRecordFailed     PaymentRecordStatus = "failed"
)

// PaymentRecord stores the outcome of one payment attempt reported by
// the payment provider. The booking flow reacts to these records but
// never creates them outside the verified webhook path.
type PaymentRecord struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID           `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Amount        decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"amount"`
	TransactionID string              `gorm:"type:varchar(100);uniqueIndex;not null" json:"transaction_id"`
	Status        PaymentRecordStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentDate   time.Time           `gorm:"not null" json:"payment_date"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
