package converter

import (
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
)

// TimeSlotToResponse converts a TimeSlotDefinition entity to TimeSlotResponse DTO
func TimeSlotToResponse(def *entity.TimeSlotDefinition) *dto.TimeSlotResponse {
	if def == nil {
		return nil
	}

	return &dto.TimeSlotResponse{
		ID:          def.ID,
		DoctorID:    def.DoctorID,
		DayOfWeek:   def.DayOfWeek,
		StartTime:   def.StartTime,
		EndTime:     def.EndTime,
		IsAvailable: def.IsAvailable,
		CreatedAt:   def.CreatedAt,
		UpdatedAt:   def.UpdatedAt,
	}
}

// TimeSlotsToResponses converts a slice of TimeSlotDefinition entities to DTOs
func TimeSlotsToResponses(defs []entity.TimeSlotDefinition) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(defs))
	for i, def := range defs {
		resp := TimeSlotToResponse(&def)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SlotInstancesToResponses converts derived slot instances to DTOs
func SlotInstancesToResponses(instances []entity.SlotInstance) []dto.SlotInstanceResponse {
	responses := make([]dto.SlotInstanceResponse, len(instances))
	for i, instance := range instances {
		responses[i] = dto.SlotInstanceResponse{
			Date:      instance.Date,
			TimeSlot:  instance.TimeSlot,
			EndTime:   instance.EndTime,
			Available: instance.Available,
		}
	}
	return responses
}
