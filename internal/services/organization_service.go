package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
	"github.com/olangriffin/fyp-helpdesk/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
)

// OrganizationService provides business logic for organizations and memberships.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name         string
	Slug         string
	Description  *string
	Domain       *string
	ContactEmail *string
	Plan         string
}

// CreateOrganization persists a new tenant. An empty plan defaults to "trial";
// an empty slug is derived from the name and suffixed until unique.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	slug, err := s.ensureUniqueSlug(slug)
	if err != nil {
		return nil, err
	}

	plan := input.Plan
	if plan == "" {
		plan = models.DefaultPlan
	}

	org := &models.Organization{
		Name:         input.Name,
		Slug:         slug,
		Description:  input.Description,
		Domain:       input.Domain,
		ContactEmail: input.ContactEmail,
		Plan:         plan,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

func (s *OrganizationService) ensureUniqueSlug(slug string) (string, error) {
	candidate := slug
	suffix := 1
	for {
		_, err := s.orgRepo.FindBySlug(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		suffix++
		candidate = fmt.Sprintf("%s-%d", slug, suffix)
	}
}

// ListOrganizations returns all organizations, newest first.
func (s *OrganizationService) ListOrganizations() ([]models.Organization, error) {
	orgs, err := s.orgRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// GetOrganization returns an organization by ID.
func (s *OrganizationService) GetOrganization(orgID string) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// GetOrganizationBySlug returns an organization by slug.
func (s *OrganizationService) GetOrganizationBySlug(slug string) (*models.Organization, error) {
	org, err := s.orgRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// AddOrUpdateMembership upserts the membership for a (user, organization)
// pair. An existing row gets the new role and owner flag and is reactivated;
// otherwise a new row is inserted.
func (s *OrganizationService) AddOrUpdateMembership(userID, organizationID, role string, isOwner bool) (*models.Membership, error) {
	membership, err := s.orgRepo.FindMembership(userID, organizationID)
	if err == nil {
		membership.Role = role
		membership.IsOwner = isOwner
		membership.IsActive = true
		if err := s.orgRepo.UpdateMembership(membership); err != nil {
			return nil, fmt.Errorf("failed to update membership: %w", err)
		}
		return membership, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	membership = &models.Membership{
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           role,
		IsOwner:        isOwner,
		IsActive:       true,
	}
	if err := s.orgRepo.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return membership, nil
}

// GetActiveMemberships returns a user's active memberships, oldest first.
func (s *OrganizationService) GetActiveMemberships(userID string) ([]models.Membership, error) {
	memberships, err := s.orgRepo.ListActiveMemberships(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return memberships, nil
}

// GetPrimaryMembership returns the oldest active membership, or nil when the
// user has none. "Primary" means earliest joined, not most recently used.
func (s *OrganizationService) GetPrimaryMembership(userID string) (*models.Membership, error) {
	memberships, err := s.GetActiveMemberships(userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, nil
	}
	return &memberships[0], nil
}

// OrganizationSummary returns platform-wide organization and membership counts.
func (s *OrganizationService) OrganizationSummary() (map[string]int64, error) {
	orgs, err := s.orgRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count organizations: %w", err)
	}
	memberships, err := s.orgRepo.CountMemberships()
	if err != nil {
		return nil, fmt.Errorf("failed to count memberships: %w", err)
	}
	return map[string]int64{
		"organizations": orgs,
		"memberships":   memberships,
	}, nil
}
