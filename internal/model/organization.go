package model

import "time"

type Organization struct {
	UUIDBase
	Name     string `gorm:"size:255;not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Organization) TableName() string {
	return "organizations"
}

// OrgMembership is an org-scoped role grant, created when a membership
// request is approved.
type OrgMembership struct {
	UUIDBase
	UserID         string `gorm:"index:idx_org_member,unique;type:varchar(36)" json:"userId"`
	OrganizationID string `gorm:"index:idx_org_member,unique;type:varchar(36)" json:"organizationId"`
	RoleID         string `gorm:"index;type:varchar(36)" json:"roleId"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`
}

func (OrgMembership) TableName() string {
	return "org_memberships"
}

const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

type OrgMembershipRequest struct {
	UUIDBase
	UserID         string     `gorm:"index;type:varchar(36)" json:"userId"`
	OrganizationID string     `gorm:"index;type:varchar(36)" json:"organizationId"`
	Status         string     `gorm:"size:20;default:'pending'" json:"status"`
	DecidedByID    *string    `gorm:"type:varchar(36)" json:"decidedById,omitempty"`
	DecidedAt      *time.Time `json:"decidedAt,omitempty"`
}

func (OrgMembershipRequest) TableName() string {
	return "org_membership_requests"
}
