package repository

import (
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"gorm.io/gorm"
)

// GormTicketRepository is a GORM implementation of TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &GormTicketRepository{db: db}
}

// Create creates a new ticket
func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

// FindByID finds a ticket by ID
func (r *GormTicketRepository) FindByID(id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List returns tickets, creation descending, optionally scoped to an organization
func (r *GormTicketRepository) List(organizationID *string) ([]models.Ticket, error) {
	query := r.db.Model(&models.Ticket{})
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}

	var tickets []models.Ticket
	err := query.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}

// Update persists changes to a ticket
func (r *GormTicketRepository) Update(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}

// Count returns the total number of tickets
func (r *GormTicketRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Count(&count).Error
	return count, err
}

type statusRow struct {
	Status string
	Count  int64
}

// StatusCounts returns per-status ticket counts, optionally scoped to an organization
func (r *GormTicketRepository) StatusCounts(organizationID *string) (map[string]int64, error) {
	query := r.db.Model(&models.Ticket{}).
		Select("status, count(id) as count").
		Group("status")
	if organizationID != nil {
		query = query.Where("organization_id = ?", *organizationID)
	}

	var rows []statusRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return statusRowsToMap(rows), nil
}

// StatusCountsByRequester returns per-status counts for a requester
func (r *GormTicketRepository) StatusCountsByRequester(userID string) (map[string]int64, error) {
	var rows []statusRow
	err := r.db.Model(&models.Ticket{}).
		Select("status, count(id) as count").
		Where("requester_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return statusRowsToMap(rows), nil
}

func statusRowsToMap(rows []statusRow) map[string]int64 {
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts
}

// RecentByRequester returns a requester's tickets, update descending
func (r *GormTicketRepository) RecentByRequester(userID string, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("requester_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&tickets).Error
	return tickets, err
}

// RecentByOrganization returns an organization's tickets, update descending
func (r *GormTicketRepository) RecentByOrganization(organizationID string, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("organization_id = ?", organizationID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&tickets).Error
	return tickets, err
}

// ListRecent returns the newest tickets platform-wide, creation descending
func (r *GormTicketRepository) ListRecent(limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Order("created_at DESC").Limit(limit).Find(&tickets).Error
	return tickets, err
}

// CountResolvedSince counts resolved tickets updated on or after the cutoff
func (r *GormTicketRepository) CountResolvedSince(organizationID string, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).
		Where("organization_id = ? AND status = ? AND updated_at >= ?",
			organizationID, models.TicketStatusResolved, cutoff).
		Count(&count).Error
	return count, err
}
