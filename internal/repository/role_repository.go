package repository

import (
	"quiz_portal_backend/internal/model"

	"gorm.io/gorm"
)

type RoleRepository struct {
	DB *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

// ListAssignable returns roles an approver may grant to an org membership.
// SYSTEM_ADMIN is never assignable through the approval flow.
func (r *RoleRepository) ListAssignable() ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.
		Where("is_active = ? AND code <> ?", true, model.RoleSystemAdmin).
		Order("rank desc, name asc").
		Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) FindByID(id string) (*model.Role, error) {
	var role model.Role
	err := r.DB.First(&role, "id = ?", id).Error
	return &role, err
}

func (r *RoleRepository) FindByCode(code string) (*model.Role, error) {
	var role model.Role
	err := r.DB.First(&role, "code = ?", code).Error
	return &role, err
}
