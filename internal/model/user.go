package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents an operator of the system. Every user belongs to exactly
// one organization; all workflow records a user touches are scoped to it.
// There is no delete operation: accounts exist for as long as their audit
// references do.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	Username       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:varchar(255);not null" json:"-"`   // Never serialized
	Role           string     `gorm:"type:varchar(50);not null" json:"role"` // admin, manager, staff
	DepartmentID   *uuid.UUID `gorm:"type:uuid;index" json:"department_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
