package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTimeSlotRequest struct {
	DayOfWeek   *int   `json:"day_of_week" validate:"required,gte=0,lte=6"` // 0 = Sunday
	StartTime   string `json:"start_time" validate:"required"`              // Format: HH:MM
	EndTime     string `json:"end_time" validate:"required"`                // Format: HH:MM
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

type UpdateTimeSlotRequest struct {
	StartTime   string `json:"start_time" validate:"omitempty"` // Format: HH:MM
	EndTime     string `json:"end_time" validate:"omitempty"`   // Format: HH:MM
	IsAvailable *bool  `json:"is_available" validate:"omitempty"`
}

// Response DTOs

type TimeSlotResponse struct {
	ID          int       `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable *bool     `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TimeSlotListResponse struct {
	Slots []TimeSlotResponse `json:"slots"`
	Total int                `json:"total"`
}
