package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	gormrepo "github.com/aladdinbruv/docproche-sub001/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentTest(t *testing.T) (PaymentUsecase, sqlmock.Sqlmock, *recordingAuditService) {
	db, mock := newMockDB(t)
	audit := &recordingAuditService{}
	uc := NewPaymentUsecase(
		db,
		newTestLogger(),
		gormrepo.NewUserRepository(),
		gormrepo.NewAppointmentRepository(),
		gormrepo.NewPaymentRecordRepository(),
		audit,
	)
	return uc, mock, audit
}

func paymentRecordRows(r *entity.PaymentRecord) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "appointment_id", "amount", "transaction_id", "status", "payment_date"}).
		AddRow(r.ID.String(), r.AppointmentID.String(), r.Amount.String(), r.TransactionID, string(r.Status), r.PaymentDate)
}

func noPaymentRecords() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "appointment_id", "amount", "transaction_id", "status", "payment_date"})
}

func TestConfirmPayment(t *testing.T) {
	appointmentID := uuid.New()
	req := &dto.PaymentWebhookRequest{
		Event:         dto.PaymentEventSucceeded,
		AppointmentID: appointmentID,
		TransactionID: "txn-42",
		Amount:        decimal.NewFromInt(150),
	}
	booking := &entity.Appointment{
		ID:               appointmentID,
		DoctorID:         uuid.New(),
		PatientID:        uuid.New(),
		Date:             futureDate(),
		TimeSlot:         "10:00",
		ConsultationType: entity.ConsultationVideo,
		Status:           entity.AppointmentStatusPending,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		CreatedBy:        uuid.New(),
	}
	stored := &entity.PaymentRecord{
		ID:            uuid.New(),
		AppointmentID: appointmentID,
		Amount:        decimal.NewFromInt(150),
		TransactionID: req.TransactionID,
		Status:        entity.PaymentRecordSuccessful,
		PaymentDate:   time.Now().UTC(),
	}

	t.Run("first confirmation records the payment and confirms", func(t *testing.T) {
		uc, mock, audit := newPaymentTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(noPaymentRecords())
		expectAppointmentLookup(mock, appointmentRows(booking))
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payment_records"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		resp, err := uc.ConfirmPayment(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(entity.PaymentRecordSuccessful), resp.Status)
		assert.Equal(t, []string{entity.AuditActionAppointmentConfirm}, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replayed confirmation returns the stored record", func(t *testing.T) {
		uc, mock, audit := newPaymentTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(paymentRecordRows(stored))

		resp, err := uc.ConfirmPayment(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, req.TransactionID, resp.TransactionID)
		assert.Equal(t, string(entity.PaymentRecordSuccessful), resp.Status)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("transaction id reused for another appointment is rejected", func(t *testing.T) {
		uc, mock, audit := newPaymentTest(t)

		other := *stored
		other.AppointmentID = uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(paymentRecordRows(&other))

		_, err := uc.ConfirmPayment(context.Background(), req)
		assert.ErrorIs(t, err, ErrDuplicateTransaction)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("losing the duplicate-insert race still succeeds", func(t *testing.T) {
		uc, mock, audit := newPaymentTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(noPaymentRecords())
		expectAppointmentLookup(mock, appointmentRows(booking))
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payment_records"`)).
			WillReturnError(uniqueViolation("payment_records_transaction_id_key"))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(paymentRecordRows(stored))
		mock.ExpectRollback()

		resp, err := uc.ConfirmPayment(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, req.TransactionID, resp.TransactionID)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("confirmation on a terminal appointment is rejected", func(t *testing.T) {
		uc, mock, audit := newPaymentTest(t)

		done := *booking
		done.Status = entity.AppointmentStatusCompleted
		done.PaymentStatus = entity.PaymentStatusPaid
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(noPaymentRecords())
		expectAppointmentLookup(mock, appointmentRows(&done))

		_, err := uc.ConfirmPayment(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFailPayment(t *testing.T) {
	appointmentID := uuid.New()
	req := &dto.PaymentWebhookRequest{
		Event:         dto.PaymentEventFailed,
		AppointmentID: appointmentID,
		TransactionID: "txn-43",
		Amount:        decimal.NewFromInt(150),
	}
	booking := &entity.Appointment{
		ID:               appointmentID,
		DoctorID:         uuid.New(),
		PatientID:        uuid.New(),
		Date:             futureDate(),
		TimeSlot:         "10:00",
		ConsultationType: entity.ConsultationInPerson,
		Status:           entity.AppointmentStatusPending,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		CreatedBy:        uuid.New(),
	}

	t.Run("failed delivery records the attempt without touching the booking", func(t *testing.T) {
		uc, mock, audit := newPaymentTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM "payment_records"`)).WillReturnRows(noPaymentRecords())
		expectAppointmentLookup(mock, appointmentRows(booking))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "payment_records"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

		resp, err := uc.FailPayment(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(entity.PaymentRecordFailed), resp.Status)
		assert.Equal(t, []string{entity.AuditActionPaymentFailed}, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
