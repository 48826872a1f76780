package dto

import (
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	Domain       *string   `json:"domain"`
	ContactEmail *string   `json:"contact_email"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToOrganizationDTO converts an organization to its response shape
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:           org.ID,
		Name:         org.Name,
		Slug:         org.Slug,
		Description:  org.Description,
		Domain:       org.Domain,
		ContactEmail: org.ContactEmail,
		Plan:         org.Plan,
		CreatedAt:    org.CreatedAt,
		UpdatedAt:    org.UpdatedAt,
	}
}

// MembershipDTO represents a user-organization link in API responses
type MembershipDTO struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id"`
	Role           string    `json:"role"`
	IsOwner        bool      `json:"is_owner"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToMembershipDTO converts a membership to its response shape
func ToMembershipDTO(membership models.Membership) MembershipDTO {
	return MembershipDTO{
		ID:             membership.ID,
		UserID:         membership.UserID,
		OrganizationID: membership.OrganizationID,
		Role:           membership.Role,
		IsOwner:        membership.IsOwner,
		IsActive:       membership.IsActive,
		CreatedAt:      membership.CreatedAt,
	}
}

// AdminOrganizationRowDTO is an organization row in the super-admin overview
type AdminOrganizationRowDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
	ContactEmail *string   `json:"contact_email"`
	MemberCount  int64     `json:"member_count"`
}
