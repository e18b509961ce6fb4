package repository

import (
	"github.com/aladdinbruv/docproche-sub001/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, def *entity.TimeSlotDefinition) error
	FindByID(db *gorm.DB, id int) (*entity.TimeSlotDefinition, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeSlotDefinition, error)
	FindEnabledByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeSlotDefinition, error)
	Update(db *gorm.DB, def *entity.TimeSlotDefinition) error
	Delete(db *gorm.DB, id int) (int64, error)
}
