package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleRequester      UserRole = "requester"
	RoleITManager      UserRole = "it_manager"
	RoleSmartdeskStaff UserRole = "smartdesk_staff"
)

// ParseUserRole maps a raw role string onto the known roles. The boolean is
// false for anything outside the enum.
func ParseUserRole(value string) (UserRole, bool) {
	switch UserRole(value) {
	case RoleRequester, RoleITManager, RoleSmartdeskStaff:
		return UserRole(value), true
	default:
		return "", false
	}
}

type User struct {
	ID                 string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"type:varchar(255);not null" json:"-"`
	PasswordSalt       string     `gorm:"type:varchar(64);not null" json:"-"`
	FullName           *string    `gorm:"type:varchar(255)" json:"full_name"`
	JobTitle           *string    `gorm:"type:varchar(255)" json:"job_title"`
	Department         *string    `gorm:"type:varchar(255)" json:"department"`
	PrimaryRole        string     `gorm:"type:varchar(32);not null;default:'requester'" json:"primary_role"`
	RoleOverrides      *string    `gorm:"type:text" json:"-"`
	Permissions        *string    `gorm:"type:text" json:"-"`
	EmailVerified      bool       `gorm:"not null;default:false" json:"email_verified"`
	VerificationToken  *string    `gorm:"type:varchar(255);index" json:"-"`
	VerificationSentAt *time.Time `json:"-"`
	PasswordUpdatedAt  *time.Time `json:"-"`
	IsActive           bool       `gorm:"not null;default:true" json:"is_active"`
	ProfileComplete    bool       `gorm:"not null;default:false" json:"profile_complete"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	LastLoginAt        *time.Time `json:"last_login_at"`
	LastLoginIP        *string    `gorm:"type:varchar(64)" json:"-"`

	// Relations
	Memberships      []Membership `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RequestedTickets []Ticket     `gorm:"foreignKey:RequesterID;constraint:OnDelete:SET NULL" json:"-"`
	AssignedTickets  []Ticket     `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
