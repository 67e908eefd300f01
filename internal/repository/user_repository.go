package repository

import (
	"errors"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindActiveBySubject resolves an identity-provider subject to a
// provisioned, active portal user and its system-wide role codes.
func (r *UserRepository) FindActiveBySubject(subjectID string) (*model.AppUser, []string, error) {
	var user model.AppUser
	err := r.DB.Where("subject_id = ? AND is_active = ?", subjectID, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotProvisioned
		}
		return nil, nil, err
	}

	roles, err := r.roleCodes(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, roles, nil
}

func (r *UserRepository) RoleCodes(userID string) ([]string, error) {
	return r.roleCodes(userID)
}

func (r *UserRepository) roleCodes(userID string) ([]string, error) {
	var codes []string
	err := r.DB.Table("roles r").
		Select("r.code").
		Joins("JOIN user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ? AND r.is_active = ?", userID, true).
		Pluck("r.code", &codes).Error
	return codes, err
}

// Upsert creates or refreshes a user from a webhook event and guarantees
// the default USER role exists, all in one transaction.
func (r *UserRepository) Upsert(subjectID, email, displayName string) (*model.AppUser, error) {
	var user model.AppUser

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("subject_id = ?", subjectID).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = model.AppUser{
				SubjectID:   subjectID,
				Email:       email,
				DisplayName: displayName,
				IsActive:    true,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			user.Email = email
			user.DisplayName = displayName
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}

		var role model.Role
		if err := tx.Where("code = ?", model.RoleUser).First(&role).Error; err != nil {
			return err
		}

		var count int64
		tx.Model(&model.UserRole{}).
			Where("user_id = ? AND role_id = ?", user.ID, role.ID).
			Count(&count)
		if count == 0 {
			if err := tx.Create(&model.UserRole{UserID: user.ID, RoleID: role.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
