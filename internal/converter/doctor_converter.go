package converter

import (
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorProfileResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		UserID:          profile.UserID,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		ConsultationFee: profile.ConsultationFee,
		Biography:       profile.Biography,
	}
}

// DoctorToResponse converts a DoctorProfile entity (with its User loaded)
// to a DoctorResponse DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              profile.UserID,
		Email:           profile.User.Email,
		FullName:        profile.User.FullName,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		ConsultationFee: profile.ConsultationFee,
		Biography:       profile.Biography,
		IsActive:        profile.User.IsActive,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities to DoctorResponse DTOs
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
