package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/repository"
	"github.com/olangriffin/fyp-helpdesk/internal/security"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("Email already registered")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrEmailNotVerified     = errors.New("Email verification required")
	ErrAccountDisabled      = errors.New("Account disabled")
	ErrUserNotFound         = errors.New("user not found")
	ErrAccountNotFound      = errors.New("Account not found")
	ErrInvalidToken         = errors.New("Invalid or expired token")
	ErrAlreadyVerified      = errors.New("Email already verified")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles signup, login, and email verification.
type AuthService struct {
	userRepo     repository.UserRepository
	orgService   *OrganizationService
	notification *NotificationService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, orgService *OrganizationService, notification *NotificationService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		orgService:   orgService,
		notification: notification,
	}
}

// SignupInput represents the information to create a new account.
type SignupInput struct {
	Email            string
	Password         string
	FullName         *string
	JobTitle         *string
	Department       *string
	PrimaryRole      string
	OrganizationName string
	OrganizationSlug string
	ClientIP         string
}

// Signup registers a new user, optionally creating an organization the user
// owns, and sends the verification email. The account cannot log in until
// verified.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	email := strings.ToLower(input.Email)

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if err := security.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	passwordData, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	verificationToken, err := security.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}

	primaryRole := input.PrimaryRole
	if primaryRole == "" {
		primaryRole = string(models.RoleRequester)
	}

	now := time.Now().UTC()
	emptyJSON := "{}"
	profileComplete := input.FullName != nil && *input.FullName != ""

	user := &models.User{
		Email:              email,
		PasswordHash:       passwordData.Hash,
		PasswordSalt:       passwordData.Salt,
		FullName:           input.FullName,
		JobTitle:           input.JobTitle,
		Department:         input.Department,
		PrimaryRole:        primaryRole,
		Permissions:        &emptyJSON,
		RoleOverrides:      &emptyJSON,
		ProfileComplete:    profileComplete,
		VerificationToken:  &verificationToken,
		VerificationSentAt: &now,
		PasswordUpdatedAt:  &now,
		EmailVerified:      false,
	}
	if input.ClientIP != "" {
		user.LastLoginIP = &input.ClientIP
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if input.OrganizationName != "" {
		displayName := user.Email
		if user.FullName != nil && *user.FullName != "" {
			displayName = *user.FullName
		}
		description := fmt.Sprintf("Created by %s", displayName)

		org, err := s.orgService.CreateOrganization(CreateOrganizationInput{
			Name:         input.OrganizationName,
			Slug:         input.OrganizationSlug,
			Description:  &description,
			ContactEmail: &email,
		})
		if err != nil {
			return nil, err
		}

		if _, err := s.orgService.AddOrUpdateMembership(user.ID, org.ID, primaryRole, true); err != nil {
			return nil, err
		}
	}

	s.notification.SendVerificationEmail(email, verificationToken)

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
	ClientIP string
}

// Login verifies credentials and records the login audit fields. Unverified
// and disabled accounts are rejected after the password check so credential
// probing cannot distinguish them from bad passwords beforehand.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	email := strings.ToLower(input.Email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash, user.PasswordSalt) {
		return nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if input.ClientIP != "" {
		user.LastLoginIP = &input.ClientIP
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

// VerifyEmail marks the account matching the token as verified and clears
// the token.
func (s *AuthService) VerifyEmail(token string) (*models.User, error) {
	user, err := s.userRepo.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationSentAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}

	return user, nil
}

// ResendVerification issues a fresh verification token and re-sends the email.
func (s *AuthService) ResendVerification(email string) error {
	email = strings.ToLower(email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	token, err := security.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	now := time.Now().UTC()
	user.VerificationToken = &token
	user.VerificationSentAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update verification token: %w", err)
	}

	s.notification.SendVerificationEmail(email, token)
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
