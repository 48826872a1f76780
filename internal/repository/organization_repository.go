package repository

import (
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by slug
func (r *GormOrganizationRepository) FindBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List returns all organizations, creation descending
func (r *GormOrganizationRepository) List() ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.Order("created_at DESC").Find(&orgs).Error
	return orgs, err
}

// Update persists changes to an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// Count returns the total number of organizations
func (r *GormOrganizationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).Count(&count).Error
	return count, err
}

// FindMembership finds the membership for a (user, organization) pair
func (r *GormOrganizationRepository) FindMembership(userID, organizationID string) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Where("user_id = ? AND organization_id = ?", userID, organizationID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembership inserts a new membership row
func (r *GormOrganizationRepository) CreateMembership(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

// UpdateMembership persists changes to a membership
func (r *GormOrganizationRepository) UpdateMembership(membership *models.Membership) error {
	return r.db.Save(membership).Error
}

// ListActiveMemberships returns a user's active memberships, oldest first
func (r *GormOrganizationRepository) ListActiveMemberships(userID string) ([]models.Membership, error) {
	var memberships []models.Membership
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Preload("Organization").
		Find(&memberships).Error
	return memberships, err
}

// CountMemberships returns the total number of membership rows
func (r *GormOrganizationRepository) CountMemberships() (int64, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).Count(&count).Error
	return count, err
}

// ListWithMemberCounts returns all organizations with their member counts
func (r *GormOrganizationRepository) ListWithMemberCounts() ([]OrganizationWithMemberCount, error) {
	var orgs []models.Organization
	if err := r.db.Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, err
	}

	type memberRow struct {
		OrganizationID string
		Count          int64
	}
	var rows []memberRow
	err := r.db.Model(&models.Membership{}).
		Select("organization_id, count(id) as count").
		Group("organization_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.OrganizationID] = row.Count
	}

	result := make([]OrganizationWithMemberCount, len(orgs))
	for i, org := range orgs {
		result[i] = OrganizationWithMemberCount{Organization: org, MemberCount: counts[org.ID]}
	}
	return result, nil
}
