package services

import (
	"fmt"

	"github.com/olangriffin/fyp-helpdesk/internal/constants"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
)

// PlatformOverview holds global counts across the whole tenant base.
type PlatformOverview struct {
	Users         int64 `json:"users"`
	VerifiedUsers int64 `json:"verified_users"`
	Organizations int64 `json:"organizations"`
	Memberships   int64 `json:"memberships"`
	Tickets       int64 `json:"tickets"`
}

// MetricsService computes read-only platform-wide aggregates.
type MetricsService struct {
	userRepo   repository.UserRepository
	orgRepo    repository.OrganizationRepository
	ticketRepo repository.TicketRepository
}

// NewMetricsService creates a new MetricsService.
func NewMetricsService(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, ticketRepo repository.TicketRepository) *MetricsService {
	return &MetricsService{
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		ticketRepo: ticketRepo,
	}
}

// Overview returns global entity counts.
func (s *MetricsService) Overview() (*PlatformOverview, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	verified, err := s.userRepo.CountVerified()
	if err != nil {
		return nil, fmt.Errorf("failed to count verified users: %w", err)
	}
	orgs, err := s.orgRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count organizations: %w", err)
	}
	memberships, err := s.orgRepo.CountMemberships()
	if err != nil {
		return nil, fmt.Errorf("failed to count memberships: %w", err)
	}
	tickets, err := s.ticketRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	return &PlatformOverview{
		Users:         users,
		VerifiedUsers: verified,
		Organizations: orgs,
		Memberships:   memberships,
		Tickets:       tickets,
	}, nil
}

// RecentSignups returns the newest users. A non-positive limit uses the
// default listing size.
func (s *MetricsService) RecentSignups(limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = constants.RecentSignupsLimit
	}
	users, err := s.userRepo.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent signups: %w", err)
	}
	return users, nil
}

// RecentTickets returns the newest tickets. A non-positive limit uses the
// default listing size.
func (s *MetricsService) RecentTickets(limit int) ([]models.Ticket, error) {
	if limit <= 0 {
		limit = constants.RecentTicketsLimit
	}
	tickets, err := s.ticketRepo.ListRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tickets: %w", err)
	}
	return tickets, nil
}

// OrganizationsWithMemberCounts returns every organization with its member count.
func (s *MetricsService) OrganizationsWithMemberCounts() ([]repository.OrganizationWithMemberCount, error) {
	rows, err := s.orgRepo.ListWithMemberCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return rows, nil
}

// UsersWithMembershipCounts returns every user with their membership count.
func (s *MetricsService) UsersWithMembershipCounts() ([]repository.UserWithMemberCount, error) {
	rows, err := s.userRepo.ListWithMembershipCounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return rows, nil
}
