package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusWaiting    TicketStatus = "waiting_for_customer"
	TicketStatusResolved   TicketStatus = "resolved"
)

type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// IssueTypes lists the issue categories offered by the intake form.
var IssueTypes = []string{
	"login_issue",
	"network",
	"hardware",
	"software_bug",
	"billing",
	"other",
}

type Ticket struct {
	ID              string         `gorm:"type:varchar(36);primarykey" json:"id"`
	OrganizationID  *string        `gorm:"type:varchar(36);index" json:"organization_id"`
	Subject         string         `gorm:"type:varchar(255);not null" json:"subject"`
	Description     string         `gorm:"type:text;not null" json:"description"`
	IssueType       string         `gorm:"type:varchar(50);not null" json:"issue_type"`
	Status          TicketStatus   `gorm:"type:varchar(32);not null;default:'open'" json:"status"`
	Priority        TicketPriority `gorm:"type:varchar(32);not null;default:'medium'" json:"priority"`
	RequesterID     *string        `gorm:"type:varchar(36);index" json:"requester_id"`
	RequesterName   *string        `gorm:"type:varchar(255)" json:"requester_name"`
	RequesterEmail  *string        `gorm:"type:varchar(255)" json:"requester_email"`
	AssigneeID      *string        `gorm:"type:varchar(36);index" json:"assignee_id"`
	ResolutionNotes *string        `gorm:"type:text" json:"resolution_notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Requester    *User         `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Assignee     *User         `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
