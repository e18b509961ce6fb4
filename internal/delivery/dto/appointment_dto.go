package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID         uuid.UUID `json:"doctor_id" validate:"required"`
	Date             string    `json:"date" validate:"required"`      // Format: YYYY-MM-DD
	TimeSlot         string    `json:"time_slot" validate:"required"` // Format: HH:MM
	ConsultationType string    `json:"consultation_type" validate:"required,oneof=in_person video"`
	Symptoms         string    `json:"symptoms" validate:"omitempty"`
	PayLater         bool      `json:"pay_later"`
}

// Response DTOs

type AppointmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	DoctorID         uuid.UUID       `json:"doctor_id"`
	DoctorName       string          `json:"doctor_name,omitempty"`
	PatientID        uuid.UUID       `json:"patient_id"`
	PatientName      string          `json:"patient_name,omitempty"`
	Date             string          `json:"date"`
	TimeSlot         string          `json:"time_slot"`
	EndTime          string          `json:"end_time"`
	ConsultationType string          `json:"consultation_type"`
	Symptoms         string          `json:"symptoms,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status"`
	Fee              decimal.Decimal `json:"fee"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
