package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/converter"
	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrRangeTooLarge    = errors.New("date range exceeds the availability horizon")
)

type AvailabilityUsecase interface {
	ResolveAvailability(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	timeSlotRepo    repository.TimeSlotRepository
	appointmentRepo repository.AppointmentRepository
	horizonDays     int
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	timeSlotRepo repository.TimeSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	horizonDays int,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		timeSlotRepo:    timeSlotRepo,
		appointmentRepo: appointmentRepo,
		horizonDays:     horizonDays,
	}
}

// ResolveAvailability projects a doctor's weekly rules over a date range
// and marks slots taken by pending or confirmed appointments. The range
// defaults to one month starting today and is capped by the horizon.
func (u *availabilityUsecase) ResolveAvailability(ctx context.Context, doctorID uuid.UUID, startDate, endDate string) (*dto.AvailabilityResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.userRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() || doctor.IsActive == nil || !*doctor.IsActive {
		return nil, ErrDoctorNotFound
	}

	from, to, err := resolveDateRange(startDate, endDate, u.horizonDays)
	if err != nil {
		return nil, err
	}

	defs, err := u.timeSlotRepo.FindEnabledByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find time slot rules for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindActiveInRange(db, doctorID, from, to)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	booked := make(map[entity.SlotKey]bool, len(appointments))
	for i := range appointments {
		booked[appointments[i].Key()] = true
	}

	instances := entity.ProjectSlotInstances(defs, from, to, booked)

	return &dto.AvailabilityResponse{
		DoctorID:  doctorID,
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
		Slots:     converter.SlotInstancesToResponses(instances),
		Total:     len(instances),
	}, nil
}

// resolveDateRange parses the optional query bounds. Missing start
// defaults to today, missing end to one month after the start.
func resolveDateRange(startDate, endDate string, horizonDays int) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateFormat
		}
		from = parsed
	}

	to := from.AddDate(0, 1, 0)
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateFormat
		}
		to = parsed
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	if to.Sub(from) > time.Duration(horizonDays)*24*time.Hour {
		return time.Time{}, time.Time{}, ErrRangeTooLarge
	}

	return from, to, nil
}
