package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/converter"
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/repository"
	"github.com/aladdinbruv/docproche-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDuplicateTransaction = errors.New("transaction id already used for another appointment")

type PaymentUsecase interface {
	ConfirmPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error)
	FailPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error)
	GetAppointmentPayments(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.PaymentRecordListResponse, error)
}

type paymentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	appointmentRepo   repository.AppointmentRepository
	paymentRecordRepo repository.PaymentRecordRepository
	auditService      service.AuditService
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	paymentRecordRepo repository.PaymentRecordRepository,
	auditService service.AuditService,
) PaymentUsecase {
	return &paymentUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		appointmentRepo:   appointmentRepo,
		paymentRecordRepo: paymentRecordRepo,
		auditService:      auditService,
	}
}

// ConfirmPayment applies a verified payment.succeeded event. Replays of
// a transaction already applied to the same appointment return the
// stored record, so provider retries are harmless. A transaction id
// reused for a different appointment is rejected.
func (u *paymentUsecase) ConfirmPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error) {
	db := u.db.WithContext(ctx)

	existing, err := u.paymentRecordRepo.FindByTransactionID(db, req.TransactionID)
	if err != nil {
		u.log.Warnf("Failed to find payment record %s: %+v", req.TransactionID, err)
		return nil, err
	}
	if existing != nil {
		if existing.AppointmentID != req.AppointmentID {
			return nil, ErrDuplicateTransaction
		}
		return converter.PaymentRecordToResponse(existing), nil
	}

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.CanConfirmPayment() {
		return nil, ErrInvalidTransition
	}

	record := &entity.PaymentRecord{
		AppointmentID: appointment.ID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        entity.PaymentRecordSuccessful,
		PaymentDate:   time.Now().UTC(),
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.paymentRecordRepo.Create(tx, record); err != nil {
		if isDuplicateKeyError(err, "transaction_id") {
			return u.resolveDuplicateTransaction(db, req)
		}
		u.log.Warnf("Failed to create payment record: %+v", err)
		return nil, err
	}

	paid := entity.PaymentStatusPaid
	affected, err := u.appointmentRepo.UpdateStatusIf(tx, appointment.ID, appointment.Status, entity.AppointmentStatusConfirmed, &paid)
	if err != nil {
		u.log.Warnf("Failed to confirm appointment %s: %+v", appointment.ID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionAppointmentConfirm, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"transaction_id": req.TransactionID,
		"amount":         req.Amount.String(),
	})

	return converter.PaymentRecordToResponse(record), nil
}

// FailPayment records a verified payment.failed event. The appointment
// keeps its slot; the patient can retry payment or cancel.
func (u *paymentUsecase) FailPayment(ctx context.Context, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error) {
	db := u.db.WithContext(ctx)

	existing, err := u.paymentRecordRepo.FindByTransactionID(db, req.TransactionID)
	if err != nil {
		u.log.Warnf("Failed to find payment record %s: %+v", req.TransactionID, err)
		return nil, err
	}
	if existing != nil {
		if existing.AppointmentID != req.AppointmentID {
			return nil, ErrDuplicateTransaction
		}
		return converter.PaymentRecordToResponse(existing), nil
	}

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	record := &entity.PaymentRecord{
		AppointmentID: appointment.ID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		Status:        entity.PaymentRecordFailed,
		PaymentDate:   time.Now().UTC(),
	}

	if err := u.paymentRecordRepo.Create(db, record); err != nil {
		if isDuplicateKeyError(err, "transaction_id") {
			return u.resolveDuplicateTransaction(db, req)
		}
		u.log.Warnf("Failed to create payment record: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, nil, entity.AuditActionPaymentFailed, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"transaction_id": req.TransactionID,
		"amount":         req.Amount.String(),
	})

	return converter.PaymentRecordToResponse(record), nil
}

// resolveDuplicateTransaction runs when an insert loses the race on the
// transaction_id unique key: another delivery of the same event stored
// the record first. For the same appointment that is a successful
// replay; a transaction id attached to a different appointment is
// rejected.
func (u *paymentUsecase) resolveDuplicateTransaction(db *gorm.DB, req *dto.PaymentWebhookRequest) (*dto.PaymentRecordResponse, error) {
	stored, err := u.paymentRecordRepo.FindByTransactionID(db, req.TransactionID)
	if err != nil {
		u.log.Warnf("Failed to find payment record %s: %+v", req.TransactionID, err)
		return nil, err
	}
	if stored == nil || stored.AppointmentID != req.AppointmentID {
		return nil, ErrDuplicateTransaction
	}
	return converter.PaymentRecordToResponse(stored), nil
}

func (u *paymentUsecase) GetAppointmentPayments(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.PaymentRecordListResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.PatientID != actorID && appointment.DoctorID != actorID {
		actor, err := u.userRepo.FindByID(db, actorID)
		if err != nil {
			u.log.Warnf("Failed to find user %s: %+v", actorID, err)
			return nil, err
		}
		if actor == nil || !actor.IsAdmin() {
			return nil, ErrAppointmentNotFound
		}
	}

	records, err := u.paymentRecordRepo.FindByAppointmentID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find payment records for appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.PaymentRecordListResponse{
		Payments: converter.PaymentRecordsToResponses(records),
		Total:    len(records),
	}, nil
}
