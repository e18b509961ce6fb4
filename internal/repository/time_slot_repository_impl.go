package repository

import (
	"errors"

	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"
	domainRepo "github.com/aladdinbruv/docproche-sub001/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type timeSlotRepository struct{}

func NewTimeSlotRepository() domainRepo.TimeSlotRepository {
	return &timeSlotRepository{}
}

func (r *timeSlotRepository) Create(db *gorm.DB, def *entity.TimeSlotDefinition) error {
	return db.Create(def).Error
}

func (r *timeSlotRepository) FindByID(db *gorm.DB, id int) (*entity.TimeSlotDefinition, error) {
	var def entity.TimeSlotDefinition
	err := db.Where("id = ?", id).First(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &def, nil
}

func (r *timeSlotRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeSlotDefinition, error) {
	var defs []entity.TimeSlotDefinition
	err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&defs).Error
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *timeSlotRepository) FindEnabledByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeSlotDefinition, error) {
	var defs []entity.TimeSlotDefinition
	err := db.Where("doctor_id = ? AND is_available = ?", doctorID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&defs).Error
	if err != nil {
		return nil, err
	}
	return defs, nil
}

func (r *timeSlotRepository) Update(db *gorm.DB, def *entity.TimeSlotDefinition) error {
	return db.Omit("Doctor").Save(def).Error
}

func (r *timeSlotRepository) Delete(db *gorm.DB, id int) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.TimeSlotDefinition{})
	return result.RowsAffected, result.Error
}
