package model

import (
	"time"

	"github.com/google/uuid"

	"assetflow/pkg/apperr"
)

// TransferType enum constants
const (
	TransferTypeDepartment = "DEPARTMENT"
	TransferTypeUser       = "USER"
)

// TransferStatus enum constants
const (
	TransferPending   = "PENDING"
	TransferApproved  = "APPROVED"
	TransferCancelled = "CANCELLED"
)

// AssetTransfer records a movement of an asset between departments or between
// users. Status is monotonic: APPROVED and CANCELLED are terminal.
type AssetTransfer struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	AssetID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"asset_id"`
	TransferType     string     `gorm:"type:varchar(20);not null" json:"transfer_type"` // DEPARTMENT, USER
	FromDepartmentID *uuid.UUID `gorm:"type:uuid" json:"from_department_id"`
	ToDepartmentID   *uuid.UUID `gorm:"type:uuid" json:"to_department_id"`
	FromUserID       *uuid.UUID `gorm:"type:uuid" json:"from_user_id"`
	ToUserID         *uuid.UUID `gorm:"type:uuid" json:"to_user_id"`
	TransferDate     time.Time  `gorm:"not null" json:"transfer_date"`
	Reason           string     `gorm:"type:text" json:"reason"`
	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ApprovedBy       *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt       *time.Time `json:"approved_at"`
	CancelReason     string     `gorm:"type:text" json:"cancel_reason"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewDepartmentTransfer builds a pending department-to-department transfer.
// The constructor is the only way workflow code creates transfers, so a
// transfer of type DEPARTMENT always carries exactly the department pair.
func NewDepartmentTransfer(id, orgID, assetID, fromDept, toDept uuid.UUID, date time.Time, reason string) (*AssetTransfer, error) {
	if fromDept == uuid.Nil || toDept == uuid.Nil {
		return nil, apperr.Validation("department transfer requires both source and destination departments")
	}
	if fromDept == toDept {
		return nil, apperr.Validation("source and destination departments must differ")
	}
	return &AssetTransfer{
		ID:               id,
		OrganizationID:   orgID,
		AssetID:          assetID,
		TransferType:     TransferTypeDepartment,
		FromDepartmentID: &fromDept,
		ToDepartmentID:   &toDept,
		TransferDate:     date,
		Reason:           reason,
		Status:           TransferPending,
	}, nil
}

// NewUserTransfer builds a pending user-to-user transfer.
func NewUserTransfer(id, orgID, assetID, fromUser, toUser uuid.UUID, date time.Time, reason string) (*AssetTransfer, error) {
	if fromUser == uuid.Nil || toUser == uuid.Nil {
		return nil, apperr.Validation("user transfer requires both source and destination users")
	}
	if fromUser == toUser {
		return nil, apperr.Validation("source and destination users must differ")
	}
	return &AssetTransfer{
		ID:             id,
		OrganizationID: orgID,
		AssetID:        assetID,
		TransferType:   TransferTypeUser,
		FromUserID:     &fromUser,
		ToUserID:       &toUser,
		TransferDate:   date,
		Reason:         reason,
		Status:         TransferPending,
	}, nil
}
