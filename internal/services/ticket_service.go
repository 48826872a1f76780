package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("ticket not found")

type autoResolutionRule struct {
	Keyword    string
	Resolution string
}

// autoResolutionRules is an ordered rule table evaluated at ticket creation.
// The first keyword found as a substring wins, so declaration order matters.
var autoResolutionRules = []autoResolutionRule{
	{
		Keyword:    "password reset",
		Resolution: "Reset the password via the self-service portal and advise the requester to update credentials.",
	},
	{
		Keyword:    "vpn",
		Resolution: "Restart the VPN client, verify network connectivity, and retry with the latest configuration file.",
	},
	{
		Keyword:    "printer",
		Resolution: "Restart the printer service and confirm the device is on the corporate network. Job should complete afterward.",
	},
}

// TicketService handles ticket lifecycle and aggregation logic
type TicketService struct {
	ticketRepo repository.TicketRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo repository.TicketRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
	}
}

// CreateTicketInput represents input for creating a ticket
type CreateTicketInput struct {
	Subject           string
	Description       string
	IssueType         string
	Priority          models.TicketPriority
	AdditionalContext string
	OrganizationID    *string
	RequesterID       *string
	RequesterName     *string
	RequesterEmail    *string
	AssigneeID        *string
}

// UpdateTicketInput represents a partial ticket update; nil fields are left
// untouched
type UpdateTicketInput struct {
	Status          *models.TicketStatus
	AssigneeID      *string
	Priority        *models.TicketPriority
	ResolutionNotes *string
}

// TicketStats holds group-by counts over a set of tickets
type TicketStats struct {
	Status    map[string]int64 `json:"status"`
	Priority  map[string]int64 `json:"priority"`
	IssueType map[string]int64 `json:"issue_type"`
	Total     map[string]int64 `json:"total"`
}

func autoResolve(input CreateTicketInput) *string {
	parts := make([]string, 0, 3)
	for _, part := range []string{input.Subject, input.Description, input.AdditionalContext} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	combined := strings.ToLower(strings.Join(parts, " "))

	for _, rule := range autoResolutionRules {
		if strings.Contains(combined, rule.Keyword) {
			resolution := rule.Resolution
			return &resolution
		}
	}
	return nil
}

// CreateTicket creates a ticket, immediately resolving it when an
// auto-resolution rule matches the combined subject, description, and
// additional context.
func (s *TicketService) CreateTicket(input CreateTicketInput) (*models.Ticket, error) {
	resolution := autoResolve(input)

	status := models.TicketStatusOpen
	if resolution != nil {
		status = models.TicketStatusResolved
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	ticket := &models.Ticket{
		OrganizationID:  input.OrganizationID,
		Subject:         input.Subject,
		Description:     input.Description,
		IssueType:       input.IssueType,
		Status:          status,
		Priority:        priority,
		RequesterID:     input.RequesterID,
		RequesterName:   input.RequesterName,
		RequesterEmail:  input.RequesterEmail,
		AssigneeID:      input.AssigneeID,
		ResolutionNotes: resolution,
	}

	if err := s.ticketRepo.Create(ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return ticket, nil
}

// GetTicket returns a ticket by ID
func (s *TicketService) GetTicket(ticketID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return ticket, nil
}

// ListTickets returns tickets, newest first, optionally scoped to an organization
func (s *TicketService) ListTickets(organizationID *string) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.List(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateTicket applies the non-nil fields of the input to an existing ticket
func (s *TicketService) UpdateTicket(ticketID string, input UpdateTicketInput) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	if input.Status != nil {
		ticket.Status = *input.Status
	}
	if input.AssigneeID != nil {
		ticket.AssigneeID = input.AssigneeID
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.ResolutionNotes != nil {
		ticket.ResolutionNotes = input.ResolutionNotes
	}

	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	return ticket, nil
}

// TicketStats computes status, priority, and issue-type counts over all
// tickets, optionally scoped to an organization. Computed eagerly per call.
func (s *TicketService) TicketStats(organizationID *string) (*TicketStats, error) {
	tickets, err := s.ticketRepo.List(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tickets for stats: %w", err)
	}

	stats := &TicketStats{
		Status:    map[string]int64{},
		Priority:  map[string]int64{},
		IssueType: map[string]int64{},
		Total:     map[string]int64{"tickets": int64(len(tickets))},
	}
	for _, ticket := range tickets {
		stats.Status[string(ticket.Status)]++
		stats.Priority[string(ticket.Priority)]++
		stats.IssueType[ticket.IssueType]++
	}

	return stats, nil
}

// TicketStatusSummary returns per-status counts, optionally scoped to an organization
func (s *TicketService) TicketStatusSummary(organizationID *string) (map[string]int64, error) {
	counts, err := s.ticketRepo.StatusCounts(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize tickets: %w", err)
	}
	return counts, nil
}

// UserTicketSummary returns per-status counts for a requester plus a total
func (s *TicketService) UserTicketSummary(userID string) (map[string]int64, error) {
	counts, err := s.ticketRepo.StatusCountsByRequester(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize user tickets: %w", err)
	}

	summary := map[string]int64{}
	var total int64
	for status, count := range counts {
		summary[status] = count
		total += count
	}
	summary["total"] = total
	return summary, nil
}

// OrganizationTicketSummary returns per-status counts for an organization plus a total
func (s *TicketService) OrganizationTicketSummary(organizationID string) (map[string]int64, error) {
	counts, err := s.ticketRepo.StatusCounts(&organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize organization tickets: %w", err)
	}

	summary := map[string]int64{}
	var total int64
	for status, count := range counts {
		summary[status] = count
		total += count
	}
	summary["total"] = total
	return summary, nil
}

// RecentUserTickets returns a requester's most recently updated tickets
func (s *TicketService) RecentUserTickets(userID string, limit int) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.RecentByRequester(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent user tickets: %w", err)
	}
	return tickets, nil
}

// RecentOrganizationTickets returns an organization's most recently updated tickets
func (s *TicketService) RecentOrganizationTickets(organizationID string, limit int) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.RecentByOrganization(organizationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent organization tickets: %w", err)
	}
	return tickets, nil
}

// ResolvedInPeriod counts an organization's tickets resolved within the last
// N days, judged by updated_at.
func (s *TicketService) ResolvedInPeriod(organizationID string, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	count, err := s.ticketRepo.CountResolvedSince(organizationID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to count resolved tickets: %w", err)
	}
	return count, nil
}
