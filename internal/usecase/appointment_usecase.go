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

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotNotBookable     = errors.New("slot does not match the doctor's availability")
	ErrSlotInPast          = errors.New("slot has already started")
	ErrSlotTaken           = errors.New("slot is already booked")
	ErrInvalidTransition   = errors.New("appointment status does not allow this action")
	ErrForbidden           = errors.New("not allowed to perform this action")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, notes string) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	timeSlotRepo      repository.TimeSlotRepository
	appointmentRepo   repository.AppointmentRepository
	slotHoldService   *service.SlotHoldService
	auditService      service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	timeSlotRepo repository.TimeSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	slotHoldService *service.SlotHoldService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		timeSlotRepo:      timeSlotRepo,
		appointmentRepo:   appointmentRepo,
		slotHoldService:   slotHoldService,
		auditService:      auditService,
	}
}

// CreateAppointment books one slot for the patient. The slot must match
// an enabled weekly rule of an active doctor and lie in the future. The
// write path is guarded three times: a Redis hold serializes concurrent
// requests, an existence check rejects taken slots early, and the
// partial unique index on active appointments is the final authority.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.userRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() || doctor.IsActive == nil || !*doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	profile, err := u.doctorProfileRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	appointment := &entity.Appointment{
		DoctorID:         req.DoctorID,
		PatientID:        patientID,
		Date:             date,
		TimeSlot:         req.TimeSlot,
		ConsultationType: entity.ConsultationType(req.ConsultationType),
		Symptoms:         req.Symptoms,
		Status:           entity.AppointmentStatusPending,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		Fee:              profile.ConsultationFee,
		CreatedBy:        patientID,
	}
	if req.PayLater {
		appointment.Status = entity.AppointmentStatusConfirmed
	}

	now := time.Now().UTC()
	if !now.Before(appointment.StartAt()) {
		return nil, ErrSlotInPast
	}

	if err := u.checkSlotBookable(db, appointment); err != nil {
		return nil, err
	}

	key := appointment.Key()
	token, err := u.slotHoldService.Acquire(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	defer u.slotHoldService.Release(ctx, key, token)

	existing, err := u.appointmentRepo.FindActiveBySlot(db, req.DoctorID, date, req.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot %s: %+v", key, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if isDuplicateKeyError(err, "uq_appointments_active_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &patientID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      req.DoctorID.String(),
		"date":           req.Date,
		"time_slot":      req.TimeSlot,
		"status":         string(appointment.Status),
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findVisibleAppointment(ctx, actorID, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment releases the slot before it starts. Patients cancel
// their own bookings, doctors their own schedule entries, admins any.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findVisibleAppointment(ctx, actorID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanCancel(time.Now().UTC()) {
		return nil, ErrInvalidTransition
	}

	affected, err := u.appointmentRepo.UpdateStatusIf(db, appointment.ID, appointment.Status, entity.AppointmentStatusCancelled, nil)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}
	appointment.Status = entity.AppointmentStatusCancelled

	u.auditService.Record(ctx, &actorID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointment.ID.String(),
	})

	return converter.AppointmentToResponse(appointment), nil
}

// CompleteAppointment is reserved for the assigned doctor, once the
// slot has ended and only from confirmed. The patient and admins can
// see the appointment but may not complete it; everyone else gets
// not-found.
func (u *appointmentUsecase) CompleteAppointment(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, notes string) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findVisibleAppointment(ctx, doctorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.DoctorID != doctorID {
		return nil, ErrForbidden
	}

	if !appointment.CanComplete(time.Now().UTC()) {
		return nil, ErrInvalidTransition
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusIf(tx, appointment.ID, entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted, nil)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}
	appointment.Status = entity.AppointmentStatusCompleted

	if notes != "" {
		appointment.Notes = notes
		if err := tx.Model(&entity.Appointment{}).Where("id = ?", appointment.ID).Update("notes", notes).Error; err != nil {
			u.log.Warnf("Failed to save notes for appointment %s: %+v", appointmentID, err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &doctorID, entity.AuditActionAppointmentDone, entity.JSON{
		"appointment_id": appointment.ID.String(),
	})

	return converter.AppointmentToResponse(appointment), nil
}

// findVisibleAppointment loads the appointment and enforces visibility:
// participants and admins see it, everyone else gets not-found rather
// than confirmation that the booking exists.
func (u *appointmentUsecase) findVisibleAppointment(ctx context.Context, actorID uuid.UUID, appointmentID uuid.UUID) (*entity.Appointment, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.PatientID == actorID || appointment.DoctorID == actorID {
		return appointment, nil
	}

	actor, err := u.userRepo.FindByID(db, actorID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", actorID, err)
		return nil, err
	}
	if actor != nil && actor.IsAdmin() {
		return appointment, nil
	}

	return nil, ErrAppointmentNotFound
}

// checkSlotBookable verifies the requested (date, time_slot) is one of
// the discrete slots produced by the doctor's enabled weekly rules.
func (u *appointmentUsecase) checkSlotBookable(db *gorm.DB, appointment *entity.Appointment) error {
	defs, err := u.timeSlotRepo.FindEnabledByDoctorID(db, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rules for doctor %s: %+v", appointment.DoctorID, err)
		return err
	}

	weekday := int(appointment.Date.UTC().Weekday())
	for i := range defs {
		if defs[i].DayOfWeek != weekday {
			continue
		}
		for _, start := range defs[i].SlotStarts() {
			if start == appointment.TimeSlot {
				return nil
			}
		}
	}

	return ErrSlotNotBookable
}
