package model

import (
	"time"

	"github.com/google/uuid"
)

// Department is the organizational unit that owns assets and budget plans.
type Department struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index:idx_departments_org_code,unique" json:"organization_id"`
	Code           string    `gorm:"type:varchar(50);not null;index:idx_departments_org_code,unique" json:"code"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
