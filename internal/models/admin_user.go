package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is an operator account of the dashboard. Accounts are provisioned
// by the hosted backend; the dashboard never creates or deletes them.
type AdminUser struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string     `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name      string     `gorm:"size:255" json:"name"`
	Role      Role       `gorm:"size:20;not null;default:'viewer';check:chk_admin_users_role,role IN ('admin','moderator','viewer')" json:"role"`
	IsActive  bool       `gorm:"not null" json:"is_active"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// AdminUserPatch lists the admin fields the dashboard may change. Nil fields
// are left untouched.
type AdminUserPatch struct {
	Name     *string
	Role     *Role
	IsActive *bool
}

func (p AdminUserPatch) Empty() bool {
	return p.Name == nil && p.Role == nil && p.IsActive == nil
}
