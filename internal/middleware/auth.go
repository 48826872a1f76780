package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/olangriffin/fyp-helpdesk/internal/apierrors"
	"github.com/olangriffin/fyp-helpdesk/internal/constants"
	"github.com/olangriffin/fyp-helpdesk/internal/database"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/security"
)

// roleRedirects maps a primary role to its landing page.
var roleRedirects = map[models.UserRole]string{
	models.RoleRequester:      "/workspace",
	models.RoleITManager:      "/manager",
	models.RoleSmartdeskStaff: "/admin/overview",
}

// RoleRedirect returns the landing page for a role. Unknown roles land on /home.
func RoleRedirect(role string) string {
	parsed, ok := models.ParseUserRole(role)
	if !ok {
		return "/home"
	}
	if redirect, ok := roleRedirects[parsed]; ok {
		return redirect
	}
	return "/home"
}

// AuthMiddleware resolves the session cookie into a user and enforces role
// checks.
type AuthMiddleware struct {
	codec           *security.SessionCodec
	cookieName      string
	superAdminEmail string
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(codec *security.SessionCodec, cookieName, superAdminEmail string) *AuthMiddleware {
	return &AuthMiddleware{
		codec:           codec,
		cookieName:      cookieName,
		superAdminEmail: superAdminEmail,
	}
}

// resolveUser decodes the session cookie and loads the active user. The
// string is the 401 message when resolution fails.
func (m *AuthMiddleware) resolveUser(c *gin.Context) (*models.User, string) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || token == "" {
		return nil, "Not authenticated"
	}

	payload := m.codec.DecodeToken(token)
	if payload == nil {
		return nil, "Invalid session"
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", payload.UserID).First(&user).Error; err != nil {
		return nil, "Inactive account"
	}
	if !user.IsActive {
		return nil, "Inactive account"
	}

	return &user, ""
}

// RequireAuth rejects requests without a valid session for an active user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, message := m.resolveUser(c)
		if user == nil {
			apierrors.Unauthorized(c, message)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// OptionalAuth resolves the session when present but never rejects. Token
// failures degrade to an anonymous request.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, _ := m.resolveUser(c); user != nil {
			c.Set(constants.ContextKeyUser, user)
		}
		c.Next()
	}
}

// RequireRoles rejects authenticated users whose primary role is not in the
// allowed set. An empty set allows any authenticated user. Chain after
// RequireAuth.
func (m *AuthMiddleware) RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[string(role)] = struct{}{}
	}

	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[user.PrimaryRole]; !ok {
				apierrors.Forbidden(c, "Insufficient permissions")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// RequireSuperAdmin allows only the single configured super-admin email,
// compared case-insensitively. This is not a role check. Chain after
// RequireAuth.
func (m *AuthMiddleware) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetCurrentUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !strings.EqualFold(user.Email, m.superAdminEmail) {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser retrieves the resolved user from the request context.
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}
