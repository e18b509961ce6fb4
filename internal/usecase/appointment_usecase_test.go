package usecase

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aladdinbruv/docproche-sub001/internal/delivery/dto"
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	gormrepo "github.com/aladdinbruv/docproche-sub001/internal/repository"
	"github.com/aladdinbruv/docproche-sub001/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// recordingAuditService captures audit actions instead of writing them.
type recordingAuditService struct {
	actions []string
}

func (s *recordingAuditService) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	s.actions = append(s.actions, action)
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func appointmentRows(a *entity.Appointment) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "doctor_id", "patient_id", "date", "time_slot",
		"consultation_type", "status", "payment_status", "fee", "created_by",
	}).AddRow(
		a.ID.String(), a.DoctorID.String(), a.PatientID.String(), a.Date, a.TimeSlot,
		string(a.ConsultationType), string(a.Status), string(a.PaymentStatus), a.Fee.String(), a.CreatedBy.String(),
	)
}

// expectAppointmentLookup covers FindByID with its two relation loads.
func expectAppointmentLookup(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "appointments" WHERE id = $1`)).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "doctor_profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "patient_profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
}

func expectUserLookup(mock sqlmock.Sqlmock, id uuid.UUID, roleID int) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_id", "email", "full_name", "is_active"}).
			AddRow(id.String(), roleID, "user@example.com", "Some User", true))
}

func newAppointmentTest(t *testing.T, hold *service.SlotHoldService) (AppointmentUsecase, sqlmock.Sqlmock, *recordingAuditService) {
	db, mock := newMockDB(t)
	audit := &recordingAuditService{}
	uc := NewAppointmentUsecase(
		db,
		newTestLogger(),
		gormrepo.NewUserRepository(),
		gormrepo.NewDoctorProfileRepository(),
		gormrepo.NewTimeSlotRepository(),
		gormrepo.NewAppointmentRepository(),
		hold,
		audit,
	)
	return uc, mock, audit
}

func newSlotHold(t *testing.T) (*service.SlotHoldService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return service.NewSlotHoldService(client, newTestLogger(), time.Minute), mr
}

func futureDate() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func pastDate() time.Time {
	d := time.Now().UTC().AddDate(0, 0, -7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestCancelAppointmentStatusSwap(t *testing.T) {
	patientID := uuid.New()
	booking := &entity.Appointment{
		ID:               uuid.New(),
		DoctorID:         uuid.New(),
		PatientID:        patientID,
		Date:             futureDate(),
		TimeSlot:         "10:00",
		ConsultationType: entity.ConsultationInPerson,
		Status:           entity.AppointmentStatusPending,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		CreatedBy:        patientID,
	}

	t.Run("cancel succeeds before the slot starts", func(t *testing.T) {
		uc, mock, audit := newAppointmentTest(t, nil)

		expectAppointmentLookup(mock, appointmentRows(booking))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		resp, err := uc.CancelAppointment(context.Background(), patientID, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusCancelled), resp.Status)
		assert.Equal(t, []string{entity.AuditActionAppointmentCancel}, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("losing the status race maps to invalid transition", func(t *testing.T) {
		uc, mock, audit := newAppointmentTest(t, nil)

		expectAppointmentLookup(mock, appointmentRows(booking))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := uc.CancelAppointment(context.Background(), patientID, booking.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompleteAppointmentAuthorization(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	booking := &entity.Appointment{
		ID:               uuid.New(),
		DoctorID:         doctorID,
		PatientID:        patientID,
		Date:             pastDate(),
		TimeSlot:         "10:00",
		ConsultationType: entity.ConsultationVideo,
		Status:           entity.AppointmentStatusConfirmed,
		PaymentStatus:    entity.PaymentStatusPaid,
		CreatedBy:        patientID,
	}

	t.Run("assigned doctor completes after the slot ends", func(t *testing.T) {
		uc, mock, audit := newAppointmentTest(t, nil)

		expectAppointmentLookup(mock, appointmentRows(booking))
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "appointments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		resp, err := uc.CompleteAppointment(context.Background(), doctorID, booking.ID, "")
		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)
		assert.Equal(t, []string{entity.AuditActionAppointmentDone}, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("patient participant is forbidden", func(t *testing.T) {
		uc, mock, audit := newAppointmentTest(t, nil)

		expectAppointmentLookup(mock, appointmentRows(booking))

		_, err := uc.CompleteAppointment(context.Background(), patientID, booking.ID, "")
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("admin sees the appointment but is forbidden", func(t *testing.T) {
		uc, mock, audit := newAppointmentTest(t, nil)
		adminID := uuid.New()

		expectAppointmentLookup(mock, appointmentRows(booking))
		expectUserLookup(mock, adminID, entity.RoleIDAdmin)

		_, err := uc.CompleteAppointment(context.Background(), adminID, booking.ID, "")
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-participant gets not found", func(t *testing.T) {
		uc, mock, _ := newAppointmentTest(t, nil)
		strangerID := uuid.New()

		expectAppointmentLookup(mock, appointmentRows(booking))
		expectUserLookup(mock, strangerID, entity.RoleIDDoctor)

		_, err := uc.CompleteAppointment(context.Background(), strangerID, booking.ID, "")
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// expectBookingChecks covers the reads CreateAppointment performs before
// touching the slot: doctor account, doctor profile, weekly rules.
func expectBookingChecks(mock sqlmock.Sqlmock, doctorID uuid.UUID, dayOfWeek int) {
	expectUserLookup(mock, doctorID, entity.RoleIDDoctor)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "doctor_profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "license_number", "specialization", "consultation_fee"}).
			AddRow(doctorID.String(), "LIC-42", "cardiology", "150.00"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "time_slot_definitions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "doctor_id", "day_of_week", "start_time", "end_time", "is_available"}).
			AddRow(1, doctorID.String(), dayOfWeek, "09:00", "12:00", true))
}

func TestCreateAppointmentConflictGuard(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	date := futureDate()
	req := &dto.CreateAppointmentRequest{
		DoctorID:         doctorID,
		Date:             date.Format("2006-01-02"),
		TimeSlot:         "10:00",
		ConsultationType: string(entity.ConsultationInPerson),
	}
	dayOfWeek := int(date.Weekday())

	t.Run("two requests for the same slot yield one booking", func(t *testing.T) {
		hold, _ := newSlotHold(t)
		uc, mock, audit := newAppointmentTest(t, hold)

		expectBookingChecks(mock, doctorID, dayOfWeek)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "appointments" WHERE doctor_id = $1 AND date = $2`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "appointments"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

		first, err := uc.CreateAppointment(context.Background(), patientID, req)
		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentStatusPending), first.Status)

		taken := &entity.Appointment{
			ID:            uuid.New(),
			DoctorID:      doctorID,
			PatientID:     patientID,
			Date:          date,
			TimeSlot:      req.TimeSlot,
			Status:        entity.AppointmentStatusPending,
			PaymentStatus: entity.PaymentStatusUnpaid,
			Fee:           decimal.NewFromInt(150),
			CreatedBy:     patientID,
		}
		expectBookingChecks(mock, doctorID, dayOfWeek)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "appointments" WHERE doctor_id = $1 AND date = $2`)).
			WillReturnRows(appointmentRows(taken))

		_, err = uc.CreateAppointment(context.Background(), uuid.New(), req)
		assert.ErrorIs(t, err, ErrSlotTaken)

		assert.Equal(t, []string{entity.AuditActionAppointmentBook}, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert losing the index race maps to slot taken", func(t *testing.T) {
		hold, _ := newSlotHold(t)
		uc, mock, audit := newAppointmentTest(t, hold)

		expectBookingChecks(mock, doctorID, dayOfWeek)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM "appointments" WHERE doctor_id = $1 AND date = $2`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "appointments"`)).
			WillReturnError(uniqueViolation("uq_appointments_active_slot"))

		_, err := uc.CreateAppointment(context.Background(), patientID, req)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("held slot is rejected before the insert", func(t *testing.T) {
		hold, _ := newSlotHold(t)
		uc, mock, audit := newAppointmentTest(t, hold)

		key := entity.SlotKey{DoctorID: doctorID, Date: req.Date, TimeSlot: req.TimeSlot}
		_, err := hold.Acquire(context.Background(), key)
		require.NoError(t, err)

		expectBookingChecks(mock, doctorID, dayOfWeek)

		_, err = uc.CreateAppointment(context.Background(), patientID, req)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Empty(t, audit.actions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
