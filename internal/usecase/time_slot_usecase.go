package usecase

import (
	"context"
	"errors"

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
	ErrSlotRuleNotFound  = errors.New("time slot rule not found")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrSlotRuleTooShort  = errors.New("time range is shorter than one slot")
	ErrSlotOverlap       = errors.New("time slot rule overlaps an existing rule")
)

type TimeSlotUsecase interface {
	CreateTimeSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	GetMyTimeSlots(ctx context.Context, doctorID uuid.UUID) (*dto.TimeSlotListResponse, error)
	UpdateTimeSlot(ctx context.Context, doctorID uuid.UUID, slotID int, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	DeleteTimeSlot(ctx context.Context, doctorID uuid.UUID, slotID int) error
}

type timeSlotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	timeSlotRepo repository.TimeSlotRepository
	auditService service.AuditService
}

func NewTimeSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timeSlotRepo repository.TimeSlotRepository,
	auditService service.AuditService,
) TimeSlotUsecase {
	return &timeSlotUsecase{
		db:           db,
		log:          log,
		timeSlotRepo: timeSlotRepo,
		auditService: auditService,
	}
}

func (u *timeSlotUsecase) CreateTimeSlot(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	def := &entity.TimeSlotDefinition{
		DoctorID:    doctorID,
		DayOfWeek:   *req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}
	if def.IsAvailable == nil {
		enabled := true
		def.IsAvailable = &enabled
	}

	if err := validateTimeRange(def.StartTime, def.EndTime); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.timeSlotRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rules for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	for i := range existing {
		if def.Overlaps(&existing[i]) {
			return nil, ErrSlotOverlap
		}
	}

	if err := u.timeSlotRepo.Create(tx, def); err != nil {
		u.log.Warnf("Failed to create time slot rule: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &doctorID, entity.AuditActionSlotRuleCreate, entity.JSON{
		"slot_rule_id": def.ID,
		"day_of_week":  def.DayOfWeek,
		"start_time":   def.StartTime,
		"end_time":     def.EndTime,
	})

	return converter.TimeSlotToResponse(def), nil
}

func (u *timeSlotUsecase) GetMyTimeSlots(ctx context.Context, doctorID uuid.UUID) (*dto.TimeSlotListResponse, error) {
	defs, err := u.timeSlotRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.TimeSlotListResponse{
		Slots: converter.TimeSlotsToResponses(defs),
		Total: len(defs),
	}, nil
}

func (u *timeSlotUsecase) UpdateTimeSlot(ctx context.Context, doctorID uuid.UUID, slotID int, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	def, err := u.timeSlotRepo.FindByID(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rule %d: %+v", slotID, err)
		return nil, err
	}
	if def == nil || def.DoctorID != doctorID {
		return nil, ErrSlotRuleNotFound
	}

	if req.StartTime != "" {
		def.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		def.EndTime = req.EndTime
	}
	if req.IsAvailable != nil {
		def.IsAvailable = req.IsAvailable
	}

	if err := validateTimeRange(def.StartTime, def.EndTime); err != nil {
		return nil, err
	}

	existing, err := u.timeSlotRepo.FindByDoctorID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rules for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	for i := range existing {
		if existing[i].ID == def.ID {
			continue
		}
		if def.Overlaps(&existing[i]) {
			return nil, ErrSlotOverlap
		}
	}

	if err := u.timeSlotRepo.Update(tx, def); err != nil {
		u.log.Warnf("Failed to update time slot rule %d: %+v", slotID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &doctorID, entity.AuditActionSlotRuleUpdate, entity.JSON{
		"slot_rule_id": def.ID,
	})

	return converter.TimeSlotToResponse(def), nil
}

func (u *timeSlotUsecase) DeleteTimeSlot(ctx context.Context, doctorID uuid.UUID, slotID int) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	def, err := u.timeSlotRepo.FindByID(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rule %d: %+v", slotID, err)
		return err
	}
	if def == nil || def.DoctorID != doctorID {
		return ErrSlotRuleNotFound
	}

	affected, err := u.timeSlotRepo.Delete(tx, slotID)
	if err != nil {
		u.log.Warnf("Failed to delete time slot rule %d: %+v", slotID, err)
		return err
	}
	if affected == 0 {
		return ErrSlotRuleNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.auditService.Record(ctx, &doctorID, entity.AuditActionSlotRuleDelete, entity.JSON{
		"slot_rule_id": slotID,
	})

	return nil
}

// validateTimeRange checks both clock values parse, start precedes end,
// and the range fits at least one full slot. Existing bookings are not
// re-validated; appointments already taken keep their slot.
func validateTimeRange(start, end string) error {
	startMin, err := entity.ParseClock(start)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	endMin, err := entity.ParseClock(end)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if startMin >= endMin {
		return ErrInvalidTimeRange
	}
	if endMin-startMin < entity.SlotLengthMinutes {
		return ErrSlotRuleTooShort
	}
	return nil
}
