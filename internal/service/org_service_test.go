package service

import (
	"errors"
	"testing"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/internal/util"

	"gorm.io/gorm"
)

func newOrgService(db *gorm.DB) *OrgService {
	return NewOrgService(repository.NewOrgRepository(db), repository.NewRoleRepository(db))
}

func seedOrg(t *testing.T, db *gorm.DB, name string) *model.Organization {
	t.Helper()
	org := &model.Organization{Name: name, IsActive: true}
	if err := db.Create(org).Error; err != nil {
		t.Fatalf("seed org: %v", err)
	}
	return org
}

func roleByCode(t *testing.T, db *gorm.DB, code string) *model.Role {
	t.Helper()
	role, err := repository.NewRoleRepository(db).FindByCode(code)
	if err != nil {
		t.Fatalf("role %s: %v", code, err)
	}
	return role
}

func seedMembership(t *testing.T, db *gorm.DB, userID, orgID, roleCode string) {
	t.Helper()
	role := roleByCode(t, db, roleCode)
	m := &model.OrgMembership{UserID: userID, OrganizationID: orgID, RoleID: role.ID, IsActive: true}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func TestRequestMembership(t *testing.T) {
	db := newTestDB(t)
	org := seedOrg(t, db, "North Clinic")
	user := seedUser(t, db, "subj-1")
	svc := newOrgService(db)

	req, err := svc.RequestMembership(user.ID, org.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if req.Status != model.RequestPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}

	// Duplicate pending requests are rejected.
	if _, err := svc.RequestMembership(user.ID, org.ID); !errors.Is(err, util.ErrAlreadyRequested) {
		t.Fatalf("expected ErrAlreadyRequested, got %v", err)
	}

	// Unknown org is a validation failure.
	if _, err := svc.RequestMembership(user.ID, model.GenerateUUID()); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecideApprovalCreatesMembership(t *testing.T) {
	db := newTestDB(t)
	org := seedOrg(t, db, "North Clinic")
	requester := seedUser(t, db, "subj-1")
	admin := seedUser(t, db, "subj-admin")
	svc := newOrgService(db)

	req, err := svc.RequestMembership(requester.ID, org.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assessor := roleByCode(t, db, model.RoleAssessor)
	decided, err := svc.Decide(admin, []string{model.RoleSystemAdmin}, req.ID, true, assessor.ID)
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decided.Status != model.RequestApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.DecidedByID == nil || *decided.DecidedByID != admin.ID {
		t.Fatalf("decision not attributed: %+v", decided)
	}

	var membership model.OrgMembership
	err = db.First(&membership, "user_id = ? AND organization_id = ?", requester.ID, org.ID).Error
	if err != nil {
		t.Fatalf("membership not created: %v", err)
	}
	if membership.RoleID != assessor.ID || !membership.IsActive {
		t.Fatalf("unexpected membership: %+v", membership)
	}

	// A decided request cannot be decided again.
	if _, err := svc.Decide(admin, []string{model.RoleSystemAdmin}, req.ID, false, ""); !errors.Is(err, util.ErrRequestDecided) {
		t.Fatalf("expected ErrRequestDecided, got %v", err)
	}
}

func TestDecideRejectionCreatesNoMembership(t *testing.T) {
	db := newTestDB(t)
	org := seedOrg(t, db, "North Clinic")
	requester := seedUser(t, db, "subj-1")
	admin := seedUser(t, db, "subj-admin")
	svc := newOrgService(db)

	req, err := svc.RequestMembership(requester.ID, org.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	decided, err := svc.Decide(admin, []string{model.RoleSystemAdmin}, req.ID, false, "")
	if err != nil {
		t.Fatalf("decide failed: %v", err)
	}
	if decided.Status != model.RequestRejected {
		t.Fatalf("expected rejected, got %s", decided.Status)
	}

	var count int64
	db.Model(&model.OrgMembership{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejection must not create memberships, found %d", count)
	}
}

func TestDecideAuthorization(t *testing.T) {
	db := newTestDB(t)
	north := seedOrg(t, db, "North Clinic")
	south := seedOrg(t, db, "South Clinic")
	requester := seedUser(t, db, "subj-1")
	plainUser := seedUser(t, db, "subj-2")
	approver := seedUser(t, db, "subj-3")
	seedMembership(t, db, approver.ID, south.ID, model.RoleDirector)
	svc := newOrgService(db)

	req, err := svc.RequestMembership(requester.ID, north.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	userRole := roleByCode(t, db, model.RoleUser)

	// A plain user cannot decide at all.
	if _, err := svc.Decide(plainUser, []string{model.RoleUser}, req.ID, true, userRole.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// An approver in another org cannot decide for this one.
	if _, err := svc.Decide(approver, []string{model.RoleUser}, req.ID, true, userRole.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for out-of-scope approver, got %v", err)
	}

	// SYSTEM_ADMIN is not assignable through approval.
	adminRole := roleByCode(t, db, model.RoleSystemAdmin)
	admin := seedUser(t, db, "subj-admin")
	if _, err := svc.Decide(admin, []string{model.RoleSystemAdmin}, req.ID, true, adminRole.ID); !errors.Is(err, util.ErrValidation) {
		t.Fatalf("expected validation error for admin role grant, got %v", err)
	}
}

func TestPendingRequestsScoping(t *testing.T) {
	db := newTestDB(t)
	north := seedOrg(t, db, "North Clinic")
	south := seedOrg(t, db, "South Clinic")
	u1 := seedUser(t, db, "subj-1")
	u2 := seedUser(t, db, "subj-2")
	approver := seedUser(t, db, "subj-3")
	admin := seedUser(t, db, "subj-admin")
	seedMembership(t, db, approver.ID, north.ID, model.RoleAssessor)
	svc := newOrgService(db)

	if _, err := svc.RequestMembership(u1.ID, north.ID); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := svc.RequestMembership(u2.ID, south.ID); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// The org-scoped approver only sees their own org's queue.
	rows, err := svc.PendingRequests(approver, []string{model.RoleUser})
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	if len(rows) != 1 || rows[0].OrganizationID != north.ID {
		t.Fatalf("expected 1 north request, got %+v", rows)
	}

	// The system admin sees everything.
	rows, err = svc.PendingRequests(admin, []string{model.RoleSystemAdmin})
	if err != nil {
		t.Fatalf("pending failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 requests for admin, got %d", len(rows))
	}

	// A plain user sees nothing and gets refused.
	if _, err := svc.PendingRequests(u1, []string{model.RoleUser}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestAssignableRolesExcludesSystemAdmin(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "subj-admin")
	svc := newOrgService(db)

	roles, err := svc.AssignableRoles(admin, []string{model.RoleSystemAdmin})
	if err != nil {
		t.Fatalf("roles failed: %v", err)
	}
	for _, r := range roles {
		if r.Code == model.RoleSystemAdmin {
			t.Fatal("SYSTEM_ADMIN must not be assignable")
		}
	}
	if len(roles) != 3 {
		t.Fatalf("expected 3 assignable roles, got %d", len(roles))
	}
}
