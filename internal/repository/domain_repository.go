package repository

import (
	"quiz_portal_backend/internal/model"

	"gorm.io/gorm"
)

type DomainRepository struct {
	DB *gorm.DB
}

func NewDomainRepository(db *gorm.DB) *DomainRepository {
	return &DomainRepository{DB: db}
}

func (r *DomainRepository) List() ([]model.Domain, error) {
	var domains []model.Domain
	err := r.DB.Order("name asc").Find(&domains).Error
	return domains, err
}

func (r *DomainRepository) FindByID(id string) (*model.Domain, error) {
	var d model.Domain
	err := r.DB.First(&d, "id = ?", id).Error
	return &d, err
}
