package dto

import (
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
)

// TicketDTO represents a ticket in API responses
type TicketDTO struct {
	ID              string                `json:"id"`
	OrganizationID  *string               `json:"organization_id"`
	Subject         string                `json:"subject"`
	Description     string                `json:"description"`
	IssueType       string                `json:"issue_type"`
	Status          models.TicketStatus   `json:"status"`
	Priority        models.TicketPriority `json:"priority"`
	RequesterID     *string               `json:"requester_id"`
	RequesterName   *string               `json:"requester_name"`
	RequesterEmail  *string               `json:"requester_email"`
	AssigneeID      *string               `json:"assignee_id"`
	ResolutionNotes *string               `json:"resolution_notes"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToTicketDTO converts a ticket to its response shape
func ToTicketDTO(ticket models.Ticket) TicketDTO {
	return TicketDTO{
		ID:              ticket.ID,
		OrganizationID:  ticket.OrganizationID,
		Subject:         ticket.Subject,
		Description:     ticket.Description,
		IssueType:       ticket.IssueType,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		RequesterID:     ticket.RequesterID,
		RequesterName:   ticket.RequesterName,
		RequesterEmail:  ticket.RequesterEmail,
		AssigneeID:      ticket.AssigneeID,
		ResolutionNotes: ticket.ResolutionNotes,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}

// ToTicketDTOs converts a slice of tickets
func ToTicketDTOs(tickets []models.Ticket) []TicketDTO {
	result := make([]TicketDTO, len(tickets))
	for i, ticket := range tickets {
		result[i] = ToTicketDTO(ticket)
	}
	return result
}
