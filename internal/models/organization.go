package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultPlan is assigned to organizations created without an explicit plan.
const DefaultPlan = "trial"

type Organization struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Slug         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description  *string   `gorm:"type:text" json:"description"`
	Domain       *string   `gorm:"type:varchar(255)" json:"domain"`
	ContactEmail *string   `gorm:"type:varchar(255)" json:"contact_email"`
	Plan         string    `gorm:"type:varchar(50);default:'trial'" json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Memberships []Membership `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	Tickets     []Ticket     `gorm:"foreignKey:OrganizationID;constraint:OnDelete:SET NULL" json:"tickets,omitempty"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
