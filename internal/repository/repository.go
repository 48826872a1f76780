package repository

import (
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByVerificationToken finds a user by pending verification token
	FindByVerificationToken(token string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Count returns the total number of users
	Count() (int64, error)

	// CountVerified returns the number of email-verified users
	CountVerified() (int64, error)

	// ListRecent returns the newest users, creation descending
	ListRecent(limit int) ([]models.User, error)

	// ListWithMembershipCounts returns all users with their membership counts,
	// creation descending
	ListWithMembershipCounts() ([]UserWithMemberCount, error)
}

// UserWithMemberCount pairs a user with the number of memberships they hold.
type UserWithMemberCount struct {
	User        models.User
	MemberCount int64
}

// OrganizationRepository defines the interface for organization and
// membership data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id string) (*models.Organization, error)

	// FindBySlug finds an organization by slug
	FindBySlug(slug string) (*models.Organization, error)

	// List returns all organizations, creation descending
	List() ([]models.Organization, error)

	// Update persists changes to an organization
	Update(org *models.Organization) error

	// Count returns the total number of organizations
	Count() (int64, error)

	// FindMembership finds the membership for a (user, organization) pair
	FindMembership(userID, organizationID string) (*models.Membership, error)

	// CreateMembership inserts a new membership row
	CreateMembership(membership *models.Membership) error

	// UpdateMembership persists changes to a membership
	UpdateMembership(membership *models.Membership) error

	// ListActiveMemberships returns a user's active memberships with their
	// organizations preloaded, creation ascending
	ListActiveMemberships(userID string) ([]models.Membership, error)

	// CountMemberships returns the total number of membership rows
	CountMemberships() (int64, error)

	// ListWithMemberCounts returns all organizations with their member
	// counts, creation descending
	ListWithMemberCounts() ([]OrganizationWithMemberCount, error)
}

// OrganizationWithMemberCount pairs an organization with its member count.
type OrganizationWithMemberCount struct {
	Organization models.Organization
	MemberCount  int64
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create creates a new ticket
	Create(ticket *models.Ticket) error

	// FindByID finds a ticket by ID
	FindByID(id string) (*models.Ticket, error)

	// List returns tickets, creation descending, optionally scoped to an
	// organization
	List(organizationID *string) ([]models.Ticket, error)

	// Update persists changes to a ticket
	Update(ticket *models.Ticket) error

	// Count returns the total number of tickets
	Count() (int64, error)

	// StatusCounts returns per-status ticket counts, optionally scoped to an
	// organization
	StatusCounts(organizationID *string) (map[string]int64, error)

	// StatusCountsByRequester returns per-status counts for a requester
	StatusCountsByRequester(userID string) (map[string]int64, error)

	// RecentByRequester returns a requester's tickets, update descending
	RecentByRequester(userID string, limit int) ([]models.Ticket, error)

	// RecentByOrganization returns an organization's tickets, update descending
	RecentByOrganization(organizationID string, limit int) ([]models.Ticket, error)

	// ListRecent returns the newest tickets platform-wide, creation descending
	ListRecent(limit int) ([]models.Ticket, error)

	// CountResolvedSince counts an organization's resolved tickets whose
	// updated_at falls on or after the cutoff
	CountResolvedSince(organizationID string, cutoff time.Time) (int64, error)
}
