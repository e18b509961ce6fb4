package dto

import (
	"github.com/google/uuid"
)

// Response DTOs

type SlotInstanceResponse struct {
	Date      string `json:"date"`      // YYYY-MM-DD
	TimeSlot  string `json:"time_slot"` // HH:MM
	EndTime   string `json:"end_time"`  // HH:MM
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	DoctorID  uuid.UUID              `json:"doctor_id"`
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Slots     []SlotInstanceResponse `json:"slots"`
	Total     int                    `json:"total"`
}
