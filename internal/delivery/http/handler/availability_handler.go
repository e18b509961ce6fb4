package handler

import (
	"net/http"

	"github.com/aladdinbruv/docproche-sub001/internal/usecase"
	"github.com/aladdinbruv/docproche-sub001/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
	}
}

// GetAvailability handles resolving a doctor's bookable slots
// @Summary Get doctor availability
// @Description Resolve a doctor's bookable slot instances over a date range
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Param start_date query string false "Start date (YYYY-MM-DD), defaults to today"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to one month after start"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	availability, err := h.availabilityUsecase.ResolveAvailability(r.Context(), doctorID, startDate, endDate)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDateRange, usecase.ErrRangeTooLarge:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to resolve availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}
