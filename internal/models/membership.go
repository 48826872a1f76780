package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership links a user to an organization. Role is stored as a plain
// string mirroring UserRole; the storage layer does not enforce the enum.
type Membership struct {
	ID             string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_membership_user_org" json:"user_id"`
	OrganizationID string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_membership_user_org" json:"organization_id"`
	Role           string    `gorm:"type:varchar(32);not null;default:'requester'" json:"role"`
	IsOwner        bool      `gorm:"not null;default:false" json:"is_owner"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
