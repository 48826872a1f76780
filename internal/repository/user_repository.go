package repository

import (
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByVerificationToken finds a user by pending verification token
func (r *GormUserRepository) FindByVerificationToken(token string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Count returns the total number of users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountVerified returns the number of email-verified users
func (r *GormUserRepository) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email_verified = ?", true).Count(&count).Error
	return count, err
}

// ListRecent returns the newest users, creation descending
func (r *GormUserRepository) ListRecent(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

// ListWithMembershipCounts returns all users with their membership counts
func (r *GormUserRepository) ListWithMembershipCounts() ([]UserWithMemberCount, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	type memberRow struct {
		UserID string
		Count  int64
	}
	var rows []memberRow
	err := r.db.Model(&models.Membership{}).
		Select("user_id, count(id) as count").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}

	result := make([]UserWithMemberCount, len(users))
	for i, user := range users {
		result[i] = UserWithMemberCount{User: user, MemberCount: counts[user.ID]}
	}
	return result, nil
}
