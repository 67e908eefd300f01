package repository

import (
	"time"

	"quiz_portal_backend/internal/model"

	"gorm.io/gorm"
)

type OrgRepository struct {
	DB *gorm.DB
}

func NewOrgRepository(db *gorm.DB) *OrgRepository {
	return &OrgRepository{DB: db}
}

func (r *OrgRepository) ListOrganizations() ([]model.Organization, error) {
	var orgs []model.Organization
	err := r.DB.Where("is_active = ?", true).Order("name asc").Find(&orgs).Error
	return orgs, err
}

func (r *OrgRepository) FindOrganization(id string) (*model.Organization, error) {
	var org model.Organization
	err := r.DB.First(&org, "id = ? AND is_active = ?", id, true).Error
	return &org, err
}

func (r *OrgRepository) HasPendingRequest(userID, orgID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.OrgMembershipRequest{}).
		Where("user_id = ? AND organization_id = ? AND status = ?", userID, orgID, model.RequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *OrgRepository) CreateRequest(req *model.OrgMembershipRequest) error {
	return r.DB.Create(req).Error
}

func (r *OrgRepository) FindRequest(id string) (*model.OrgMembershipRequest, error) {
	var req model.OrgMembershipRequest
	err := r.DB.First(&req, "id = ?", id).Error
	return &req, err
}

// PendingRequestRow flattens a pending request with requester and org
// display fields for the approval queue.
type PendingRequestRow struct {
	model.OrgMembershipRequest
	UserEmail       string `json:"userEmail"`
	UserDisplayName string `json:"userDisplayName"`
	OrgName         string `json:"orgName"`
}

// PendingRequests lists pending rows, optionally restricted to a set of
// organizations (an approver only sees their own orgs).
func (r *OrgRepository) PendingRequests(orgIDs []string) ([]PendingRequestRow, error) {
	query := r.DB.Table("org_membership_requests req").
		Select("req.*, u.email as user_email, u.display_name as user_display_name, o.name as org_name").
		Joins("JOIN app_users u ON u.id = req.user_id").
		Joins("JOIN organizations o ON o.id = req.organization_id").
		Where("req.status = ? AND req.deleted_at IS NULL", model.RequestPending)

	if orgIDs != nil {
		query = query.Where("req.organization_id IN ?", orgIDs)
	}

	var rows []PendingRequestRow
	err := query.Order("req.created_at asc").Scan(&rows).Error
	return rows, err
}

// DecideRequest finalizes a pending request; approval also creates the
// org-scoped membership, atomically with the status flip.
func (r *OrgRepository) DecideRequest(req *model.OrgMembershipRequest, decidedBy string, approve bool, roleID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		req.Status = model.RequestRejected
		if approve {
			req.Status = model.RequestApproved
		}
		req.DecidedByID = &decidedBy
		req.DecidedAt = &now

		if err := tx.Save(req).Error; err != nil {
			return err
		}

		if !approve {
			return nil
		}

		membership := model.OrgMembership{
			UserID:         req.UserID,
			OrganizationID: req.OrganizationID,
			RoleID:         roleID,
			IsActive:       true,
		}
		return tx.Create(&membership).Error
	})
}

// OrgUserRow is one member of an organization with their org-scoped role.
type OrgUserRow struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	RoleCode    string `json:"roleCode"`
	RoleName    string `json:"roleName"`
}

func (r *OrgRepository) OrgUsers(orgID string) ([]OrgUserRow, error) {
	var rows []OrgUserRow
	err := r.DB.Table("org_memberships m").
		Select("u.id as user_id, u.email, u.display_name, r.code as role_code, r.name as role_name").
		Joins("JOIN app_users u ON u.id = m.user_id").
		Joins("JOIN roles r ON r.id = m.role_id").
		Where("m.organization_id = ? AND m.is_active = ? AND m.deleted_at IS NULL", orgID, true).
		Order("u.display_name asc").
		Scan(&rows).Error
	return rows, err
}

// ApproverOrgIDs returns the orgs in which the user holds an active
// assessor or director membership.
func (r *OrgRepository) ApproverOrgIDs(userID string) ([]string, error) {
	var ids []string
	err := r.DB.Table("org_memberships m").
		Joins("JOIN roles r ON r.id = m.role_id").
		Where("m.user_id = ? AND m.is_active = ? AND r.code IN ?",
			userID, true, []string{model.RoleAssessor, model.RoleDirector}).
		Pluck("m.organization_id", &ids).Error
	return ids, err
}
