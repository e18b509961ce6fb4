package converter

import (
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:               appointment.ID,
		DoctorID:         appointment.DoctorID,
		PatientID:        appointment.PatientID,
		Date:             appointment.Date.Format("2006-01-02"),
		TimeSlot:         appointment.TimeSlot,
		EndTime:          appointment.EndAt().Format("15:04"),
		ConsultationType: string(appointment.ConsultationType),
		Symptoms:         appointment.Symptoms,
		Notes:            appointment.Notes,
		Status:           string(appointment.Status),
		PaymentStatus:    string(appointment.PaymentStatus),
		Fee:              appointment.Fee,
		CreatedAt:        appointment.CreatedAt,
		UpdatedAt:        appointment.UpdatedAt,
	}

	// Include participant names if preloaded
	if appointment.Doctor.UserID != uuid.Nil {
		response.DoctorName = appointment.Doctor.User.FullName
	}
	if appointment.Patient.UserID != uuid.Nil {
		response.PatientName = appointment.Patient.User.FullName
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
