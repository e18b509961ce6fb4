package converter

import (
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
)

// PaymentRecordToResponse converts a PaymentRecord entity to PaymentRecordResponse DTO
func PaymentRecordToResponse(record *entity.PaymentRecord) *dto.PaymentRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.PaymentRecordResponse{
		ID:            record.ID,
		AppointmentID: record.AppointmentID,
		Amount:        record.Amount,
		TransactionID: record.TransactionID,
		Status:        string(record.Status),
		PaymentDate:   record.PaymentDate,
	}
}

// PaymentRecordsToResponses converts a slice of PaymentRecord entities to DTOs
func PaymentRecordsToResponses(records []entity.PaymentRecord) []dto.PaymentRecordResponse {
	responses := make([]dto.PaymentRecordResponse, len(records))
	for i, record := range records {
		resp := PaymentRecordToResponse(&record)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
