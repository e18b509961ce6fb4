package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	uc "github.com/aladdinbruv/docproche-sub001/internal/usecase"
	"github.com/aladdinbruv/docproche-sub001/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPaymentUsecase struct {
	confirmCalled bool
	failCalled    bool
	confirmErr    error
	lastRequest   *dto.PaymentWebhookRequest
}

func (s *stubPaymentUsecase) ConfirmPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error) {
	s.confirmCalled = true
	s.lastRequest = req
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return &dto.PaymentRecordResponse{TransactionID: req.TransactionID, Status: "successful"}, nil
}

func (s *stubPaymentUsecase) FailPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error) {
	s.failCalled = true
	s.lastRequest = req
	return &dto.PaymentRecordResponse{TransactionID: req.TransactionID, Status: "failed"}, nil
}

func (s *stubPaymentUsecase) GetAppointmentPayments(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.PaymentRecordListResponse, error) {
	return &dto.PaymentRecordListResponse{}, nil
}

const testWebhookSecret = "test-webhook-secret"

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func webhookBody(t *testing.T, event string) []byte {
	body, err := json.Marshal(dto.PaymentWebhookRequest{
		Event:         event,
		AppointmentID: uuid.New(),
		TransactionID: "txn-123",
		Amount:        decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	return body
}

func TestHandleWebhook(t *testing.T) {
	t.Run("missing signature is rejected", func(t *testing.T) {
		usecase := &stubPaymentUsecase{}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(webhookBody(t, dto.PaymentEventSucceeded)))
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, usecase.confirmCalled)
	})

	t.Run("wrong signature is rejected", func(t *testing.T) {
		usecase := &stubPaymentUsecase{}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(webhookBody(t, dto.PaymentEventSucceeded)))
		req.Header.Set(SignatureHeader, "deadbeef")
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, usecase.confirmCalled)
	})

	t.Run("signature over a different body is rejected", func(t *testing.T) {
		usecase := &stubPaymentUsecase{}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		body := webhookBody(t, dto.PaymentEventSucceeded)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, signBody([]byte("tampered")))
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("succeeded event confirms payment", func(t *testing.T) {
		usecase := &stubPaymentUsecase{}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		body := webhookBody(t, dto.PaymentEventSucceeded)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, signBody(body))
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, usecase.confirmCalled)
		assert.False(t, usecase.failCalled)
		require.NotNil(t, usecase.lastRequest)
		assert.Equal(t, "txn-123", usecase.lastRequest.TransactionID)
	})

	t.Run("failed event records the failure", func(t *testing.T) {
		usecase := &stubPaymentUsecase{}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		body := webhookBody(t, dto.PaymentEventFailed)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, signBody(body))
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, usecase.failCalled)
		assert.False(t, usecase.confirmCalled)
	})

	t.Run("confirmation on a terminal booking maps to conflict", func(t *testing.T) {
		usecase := &stubPaymentUsecase{confirmErr: uc.ErrInvalidTransition}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		body := webhookBody(t, dto.PaymentEventSucceeded)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, signBody(body))
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown event fails validation", func(t *testing.T) {
		usecase := &stubPaymentUsecase{}
		h := NewPaymentHandler(usecase, validator.NewValidator(), testWebhookSecret)

		body := webhookBody(t, "payment.refunded")
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(body))
		req.Header.Set(SignatureHeader, signBody(body))
		rec := httptest.NewRecorder()
		h.HandleWebhook(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, usecase.confirmCalled)
		assert.False(t, usecase.failCalled)
	})
}
