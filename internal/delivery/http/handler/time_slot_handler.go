package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/http/middleware"
	"github.com/aladdinbruv/docproche-sub001/internal/usecase"
	"github.com/aladdinbruv/docproche-sub001/pkg/response"
	"github.com/aladdinbruv/docproche-sub001/pkg/validator"

	"github.com/gorilla/mux"
)

type TimeSlotHandler struct {
	timeSlotUsecase usecase.TimeSlotUsecase
	validator       *validator.CustomValidator
}

func NewTimeSlotHandler(timeSlotUsecase usecase.TimeSlotUsecase, validator *validator.CustomValidator) *TimeSlotHandler {
	return &TimeSlotHandler{
		timeSlotUsecase: timeSlotUsecase,
		validator:       validator,
	}
}

// CreateTimeSlot handles creating a weekly availability rule
// @Summary Create time slot rule
// @Description Add a weekly availability rule for the authenticated doctor
// @Tags TimeSlots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTimeSlotRequest true "Create Time Slot Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors/me/slots [post]
func (h *TimeSlotHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.timeSlotUsecase.CreateTimeSlot(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeFormat, usecase.ErrInvalidTimeRange, usecase.ErrSlotRuleTooShort:
			response.BadRequest(w, err.Error())
		case usecase.ErrSlotOverlap:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create time slot rule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Time slot rule created successfully", slot)
}

// GetMyTimeSlots handles listing the authenticated doctor's rules
// @Summary List my time slot rules
// @Description Get the authenticated doctor's weekly availability rules
// @Tags TimeSlots
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/me/slots [get]
func (h *TimeSlotHandler) GetMyTimeSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slots, err := h.timeSlotUsecase.GetMyTimeSlots(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get time slot rules")
		return
	}

	response.Success(w, http.StatusOK, "Time slot rules retrieved successfully", slots)
}

// UpdateTimeSlot handles updating a weekly availability rule
// @Summary Update time slot rule
// @Description Update one of the authenticated doctor's rules
// @Tags TimeSlots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Time Slot Rule ID"
// @Param request body dto.UpdateTimeSlotRequest true "Update Time Slot Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctors/me/slots/{id} [put]
func (h *TimeSlotHandler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid time slot rule ID")
		return
	}

	var req dto.UpdateTimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.timeSlotUsecase.UpdateTimeSlot(r.Context(), doctorID, slotID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotRuleNotFound:
			response.NotFound(w, "Time slot rule not found")
		case usecase.ErrInvalidTimeFormat, usecase.ErrInvalidTimeRange, usecase.ErrSlotRuleTooShort:
			response.BadRequest(w, err.Error())
		case usecase.ErrSlotOverlap:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update time slot rule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot rule updated successfully", slot)
}

// DeleteTimeSlot handles deleting a weekly availability rule
// @Summary Delete time slot rule
// @Description Remove one of the authenticated doctor's rules
// @Tags TimeSlots
// @Security BearerAuth
// @Produce json
// @Param id path int true "Time Slot Rule ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/me/slots/{id} [delete]
func (h *TimeSlotHandler) DeleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid time slot rule ID")
		return
	}

	if err := h.timeSlotUsecase.DeleteTimeSlot(r.Context(), doctorID, slotID); err != nil {
		switch err {
		case usecase.ErrSlotRuleNotFound:
			response.NotFound(w, "Time slot rule not found")
		default:
			response.InternalServerError(w, "Failed to delete time slot rule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot rule deleted successfully", nil)
}
