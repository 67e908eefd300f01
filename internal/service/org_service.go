package service

import (
	"errors"
	"fmt"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/internal/util"

	"gorm.io/gorm"
)

// OrgService covers the membership request/approval workflow. Approval
// authority is org-scoped: a system admin decides anywhere, an assessor
// or director only inside orgs where they hold that membership.
type OrgService struct {
	Orgs  *repository.OrgRepository
	Roles *repository.RoleRepository
}

func NewOrgService(orgs *repository.OrgRepository, roles *repository.RoleRepository) *OrgService {
	return &OrgService{Orgs: orgs, Roles: roles}
}

func (s *OrgService) ListOrganizations() ([]model.Organization, error) {
	return s.Orgs.ListOrganizations()
}

func (s *OrgService) RequestMembership(userID, orgID string) (*model.OrgMembershipRequest, error) {
	if !model.IsUUID(orgID) {
		return nil, fmt.Errorf("%w: requested_organization_id must be a UUID", util.ErrValidation)
	}

	if _, err := s.Orgs.FindOrganization(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown organization", util.ErrValidation)
		}
		return nil, err
	}

	pending, err := s.Orgs.HasPendingRequest(userID, orgID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, util.ErrAlreadyRequested
	}

	req := &model.OrgMembershipRequest{
		UserID:         userID,
		OrganizationID: orgID,
		Status:         model.RequestPending,
	}
	if err := s.Orgs.CreateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

func isSystemAdmin(roles []string) bool {
	for _, r := range roles {
		if r == model.RoleSystemAdmin {
			return true
		}
	}
	return false
}

// approverScope returns nil (meaning: all orgs) for system admins, the
// approver's org ids otherwise, or ErrPermissionDenied.
func (s *OrgService) approverScope(actor *model.AppUser, actorRoles []string) ([]string, error) {
	if isSystemAdmin(actorRoles) {
		return nil, nil
	}

	orgIDs, err := s.Orgs.ApproverOrgIDs(actor.ID)
	if err != nil {
		return nil, err
	}
	if len(orgIDs) == 0 {
		return nil, util.ErrPermissionDenied
	}
	return orgIDs, nil
}

func (s *OrgService) PendingRequests(actor *model.AppUser, actorRoles []string) ([]repository.PendingRequestRow, error) {
	scope, err := s.approverScope(actor, actorRoles)
	if err != nil {
		return nil, err
	}
	return s.Orgs.PendingRequests(scope)
}

// Decide approves or rejects a pending request. Approval requires an
// assignable role for the new membership.
func (s *OrgService) Decide(actor *model.AppUser, actorRoles []string, requestID string, approve bool, roleID string) (*model.OrgMembershipRequest, error) {
	if !model.IsUUID(requestID) {
		return nil, fmt.Errorf("%w: request_id must be a UUID", util.ErrValidation)
	}

	req, err := s.Orgs.FindRequest(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if req.Status != model.RequestPending {
		return nil, util.ErrRequestDecided
	}

	scope, err := s.approverScope(actor, actorRoles)
	if err != nil {
		return nil, err
	}
	if scope != nil {
		inScope := false
		for _, id := range scope {
			if id == req.OrganizationID {
				inScope = true
				break
			}
		}
		if !inScope {
			return nil, util.ErrPermissionDenied
		}
	}

	if approve {
		if !model.IsUUID(roleID) {
			return nil, fmt.Errorf("%w: role_id must be a UUID", util.ErrValidation)
		}
		role, err := s.Roles.FindByID(roleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown role_id", util.ErrValidation)
			}
			return nil, err
		}
		if role.Code == model.RoleSystemAdmin || !role.IsActive {
			return nil, fmt.Errorf("%w: role is not assignable", util.ErrValidation)
		}
	}

	if err := s.Orgs.DecideRequest(req, actor.ID, approve, roleID); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *OrgService) OrgUsers(actor *model.AppUser, actorRoles []string, orgID string) ([]repository.OrgUserRow, error) {
	if !model.IsUUID(orgID) {
		return nil, fmt.Errorf("%w: organization_id must be a UUID", util.ErrValidation)
	}

	scope, err := s.approverScope(actor, actorRoles)
	if err != nil {
		return nil, err
	}
	if scope != nil {
		inScope := false
		for _, id := range scope {
			if id == orgID {
				inScope = true
				break
			}
		}
		if !inScope {
			return nil, util.ErrPermissionDenied
		}
	}

	return s.Orgs.OrgUsers(orgID)
}

// AssignableRoles backs the role dropdown in the approval UI; visible to
// system admins and approvers only.
func (s *OrgService) AssignableRoles(actor *model.AppUser, actorRoles []string) ([]model.Role, error) {
	if _, err := s.approverScope(actor, actorRoles); err != nil {
		return nil, err
	}
	return s.Roles.ListAssignable()
}
