package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/http/middleware"
	"github.com/aladdinbruv/docproche-sub001/internal/usecase"
	"github.com/aladdinbruv/docproche-sub001/pkg/response"
	"github.com/aladdinbruv/docproche-sub001/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body,
// computed by the payment provider with the shared webhook secret.
const SignatureHeader = "X-Payment-Signature"

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
	webhookSecret  string
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator, webhookSecret string) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
		webhookSecret:  webhookSecret,
	}
}

// HandleWebhook handles signed payment provider callbacks
// @Summary Payment webhook
// @Description Receive a signed payment event from the provider
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Payment-Signature header string true "Hex HMAC-SHA256 of the request body"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Failed to read request body")
		return
	}

	if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		response.Unauthorized(w, "Invalid webhook signature")
		return
	}

	var req dto.PaymentWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	var record *dto.PaymentRecordResponse
	switch req.Event {
	case dto.PaymentEventSucceeded:
		record, err = h.paymentUsecase.ConfirmPayment(r.Context(), &req)
	case dto.PaymentEventFailed:
		record, err = h.paymentUsecase.FailPayment(r.Context(), &req)
	}
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrDuplicateTransaction:
			response.Conflict(w, err.Error())
		case usecase.ErrInvalidTransition:
			// Out-of-order confirmation on a terminal booking; the
			// provider keeps the event for manual reconciliation.
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to process payment event")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment event processed", record)
}

// GetAppointmentPayments handles listing payment attempts for a booking
// @Summary List appointment payments
// @Description Get the payment records of an appointment visible to the authenticated user
// @Tags Payments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/payments [get]
func (h *PaymentHandler) GetAppointmentPayments(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	payments, err := h.paymentUsecase.GetAppointmentPayments(r.Context(), actorID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get payment records")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment records retrieved successfully", payments)
}

func (h *PaymentHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
