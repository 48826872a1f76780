package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olangriffin/fyp-helpdesk/internal/apierrors"
	"github.com/olangriffin/fyp-helpdesk/internal/config"
	"github.com/olangriffin/fyp-helpdesk/internal/dto"
	"github.com/olangriffin/fyp-helpdesk/internal/middleware"
	"github.com/olangriffin/fyp-helpdesk/internal/security"
	"github.com/olangriffin/fyp-helpdesk/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	codec       *security.SessionCodec
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, codec *security.SessionCodec, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		codec:       codec,
		cfg:         cfg,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, token, h.cfg.SessionExpirationMinutes*60, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", "", false, true)
}

// Signup registers a new account, optionally creating an organization the
// user owns.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Email            string  `json:"email" binding:"required,email"`
		Password         string  `json:"password" binding:"required,min=8,max=128"`
		FullName         *string `json:"full_name"`
		JobTitle         *string `json:"job_title"`
		Department       *string `json:"department"`
		PrimaryRole      string  `json:"primary_role" binding:"omitempty,oneof=requester it_manager smartdesk_staff"`
		OrganizationName string  `json:"organization_name"`
		OrganizationSlug string  `json:"organization_slug"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.authService.Signup(services.SignupInput{
		Email:            req.Email,
		Password:         req.Password,
		FullName:         req.FullName,
		JobTitle:         req.JobTitle,
		Department:       req.Department,
		PrimaryRole:      req.PrimaryRole,
		OrganizationName: req.OrganizationName,
		OrganizationSlug: req.OrganizationSlug,
		ClientIP:         c.ClientIP(),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"redirect_url":          "/auth?mode=login",
		"requires_verification": true,
		"message":               "Account created. Please verify your email before logging in.",
	})
}

// Login authenticates a user, sets the session cookie, and returns the
// role-based landing page.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=128"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.codec.CreateToken(user.ID, user.PrimaryRole, 0)
	if err != nil {
		apierrors.InternalError(c, "Failed to create session")
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"redirect_url": middleware.RoleRedirect(user.PrimaryRole),
		"user":         dto.ToUserDTO(*user),
	})
}

// Logout removes the session cookie. The token itself stays valid until
// expiry; there is no server-side revocation.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// VerifyEmail activates the account matching the verification token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	type VerifyRequest struct {
		Token string `json:"token" binding:"required,min=10"`
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.authService.VerifyEmail(req.Token); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified. You can now log in.",
	})
}

// ResendVerification issues a fresh verification token for an unverified account.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	type ResendRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ResendVerification(req.Email); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification email sent.",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GoogleStart is an unimplemented OAuth stub.
func (h *AuthHandler) GoogleStart(c *gin.Context) {
	apierrors.NotImplemented(c, "Google OAuth is not configured in this environment. Provide client credentials to enable.")
}

// GoogleCallback is an unimplemented OAuth stub.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	apierrors.NotImplemented(c, "Google OAuth not configured")
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, security.ErrPasswordTooShort),
		errors.Is(err, security.ErrPasswordCaseMixing),
		errors.Is(err, security.ErrPasswordNoDigit):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrEmailNotVerified),
		errors.Is(err, services.ErrAccountDisabled):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrAlreadyVerified):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAccountNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
