package dto

import (
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FullName        *string    `json:"full_name"`
	JobTitle        *string    `json:"job_title"`
	Department      *string    `json:"department"`
	PrimaryRole     string     `json:"primary_role"`
	EmailVerified   bool       `json:"email_verified"`
	IsActive        bool       `json:"is_active"`
	ProfileComplete bool       `json:"profile_complete"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

// ToUserDTO converts a user to its response shape
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		JobTitle:        user.JobTitle,
		Department:      user.Department,
		PrimaryRole:     user.PrimaryRole,
		EmailVerified:   user.EmailVerified,
		IsActive:        user.IsActive,
		ProfileComplete: user.ProfileComplete,
		CreatedAt:       user.CreatedAt,
		LastLoginAt:     user.LastLoginAt,
	}
}

// AdminUserRowDTO is a user row in the super-admin user listing
type AdminUserRowDTO struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      *string   `json:"full_name"`
	PrimaryRole   string    `json:"primary_role"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	MemberCount   int64     `json:"member_count"`
}
