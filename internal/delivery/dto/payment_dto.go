package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Webhook event names sent by the payment provider
const (
	PaymentEventSucceeded = "payment.succeeded"
	PaymentEventFailed    = "payment.failed"
)

// Request DTOs

type PaymentWebhookRequest struct {
	Event         string          `json:"event" validate:"required,oneof=payment.succeeded payment.failed"`
	AppointmentID uuid.UUID       `json:"appointment_id" validate:"required"`
	TransactionID string          `json:"transaction_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
}

// Response DTOs

type PaymentRecordResponse struct {
	ID            uuid.UUID       `json:"id"`
	AppointmentID uuid.UUID       `json:"appointment_id"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	PaymentDate   time.Time       `json:"payment_date"`
}

type PaymentRecordListResponse struct {
	Payments []PaymentRecordResponse `json:"payments"`
	Total    int                     `json:"total"`
}
