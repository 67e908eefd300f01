package model

// Role codes seeded at migration time.
const (
	RoleSystemAdmin = "SYSTEM_ADMIN"
	RoleDirector    = "DIRECTOR"
	RoleAssessor    = "ASSESSOR"
	RoleUser        = "USER"
)

// AppUser is provisioned by the identity-provider webhook; the portal never
// stores credentials. SubjectID is the provider's stable user id (the JWT
// "sub" claim).
type AppUser struct {
	UUIDBase
	SubjectID   string `gorm:"size:191;uniqueIndex;not null" json:"subjectId"`
	Email       string `gorm:"size:255;not null" json:"email"`
	DisplayName string `gorm:"size:255" json:"displayName"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (AppUser) TableName() string {
	return "app_users"
}

type Role struct {
	UUIDBase
	Code     string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Rank     int    `gorm:"default:0" json:"rank"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole holds system-wide role grants (as opposed to org-scoped ones on
// OrgMembership).
type UserRole struct {
	UUIDBase
	UserID string `gorm:"index:idx_user_role,unique;type:varchar(36)" json:"userId"`
	RoleID string `gorm:"index:idx_user_role,unique;type:varchar(36)" json:"roleId"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
