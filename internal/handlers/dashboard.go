package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olangriffin/fyp-helpdesk/internal/apierrors"
	"github.com/olangriffin/fyp-helpdesk/internal/constants"
	"github.com/olangriffin/fyp-helpdesk/internal/dto"
	"github.com/olangriffin/fyp-helpdesk/internal/middleware"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/services"
)

// DashboardHandler serves the role-gated view endpoints. The original system
// rendered these as HTML; here they return the same context data as JSON.
type DashboardHandler struct {
	orgService     *services.OrganizationService
	ticketService  *services.TicketService
	metricsService *services.MetricsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(orgService *services.OrganizationService, ticketService *services.TicketService, metricsService *services.MetricsService) *DashboardHandler {
	return &DashboardHandler{
		orgService:     orgService,
		ticketService:  ticketService,
		metricsService: metricsService,
	}
}

// roleOptions is the role picker offered by the signup form.
func roleOptions() []gin.H {
	return []gin.H{
		{"value": string(models.RoleRequester), "label": "Requester"},
		{"value": string(models.RoleITManager), "label": "IT Manager"},
		{"value": string(models.RoleSmartdeskStaff), "label": "SmartDesk Staff"},
	}
}

// Landing serves the public landing context. Authenticated visitors are
// redirected straight to their role home.
func (h *DashboardHandler) Landing(c *gin.Context) {
	if user, exists := middleware.GetCurrentUser(c); exists {
		c.Redirect(http.StatusFound, middleware.RoleRedirect(user.PrimaryRole))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "SmartDesk Helpdesk",
		"year":  time.Now().UTC().Year(),
		"roles": roleOptions(),
	})
}

// AuthPortal serves the login/signup portal context. Anything other than
// mode=signup falls back to login.
func (h *DashboardHandler) AuthPortal(c *gin.Context) {
	if user, exists := middleware.GetCurrentUser(c); exists {
		c.Redirect(http.StatusFound, middleware.RoleRedirect(user.PrimaryRole))
		return
	}

	mode := c.Query("mode")
	if mode != "signup" {
		mode = "login"
	}

	c.JSON(http.StatusOK, gin.H{
		"title": "Access SmartDesk",
		"mode":  mode,
		"roles": roleOptions(),
		"year":  time.Now().UTC().Year(),
	})
}

// Desk serves the public ticket intake context. Works with or without a
// session.
func (h *DashboardHandler) Desk(c *gin.Context) {
	var currentUser *dto.UserDTO
	if user, exists := middleware.GetCurrentUser(c); exists {
		u := dto.ToUserDTO(*user)
		currentUser = &u
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       "SmartDesk Helpdesk",
		"issue_types": models.IssueTypes,
		"priorities": []models.TicketPriority{
			models.TicketPriorityLow,
			models.TicketPriorityMedium,
			models.TicketPriorityHigh,
			models.TicketPriorityCritical,
		},
		"statuses": []models.TicketStatus{
			models.TicketStatusOpen,
			models.TicketStatusInProgress,
			models.TicketStatusWaiting,
			models.TicketStatusResolved,
		},
		"current_user": currentUser,
	})
}

// Home returns the logged-in landing context with the user's role home.
func (h *DashboardHandler) Home(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_user": dto.ToUserDTO(*user),
		"role_home":    middleware.RoleRedirect(user.PrimaryRole),
	})
}

// Workspace returns the requester dashboard: primary organization, personal
// ticket summary, and recent tickets.
func (h *DashboardHandler) Workspace(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	membership, err := h.orgService.GetPrimaryMembership(user.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	var (
		organization *dto.OrganizationDTO
		membershipDTO *dto.MembershipDTO
	)
	if membership != nil {
		org := dto.ToOrganizationDTO(membership.Organization)
		organization = &org
		m := dto.ToMembershipDTO(*membership)
		membershipDTO = &m
	}

	summary, err := h.ticketService.UserTicketSummary(user.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	tickets, err := h.ticketService.RecentUserTickets(user.ID, constants.RecentUserTicketsLimit)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_user": dto.ToUserDTO(*user),
		"organization": organization,
		"membership":   membershipDTO,
		"summary":      summary,
		"tickets":      dto.ToTicketDTOs(tickets),
	})
}

// Manager returns the IT-manager dashboard for the user's primary organization.
func (h *DashboardHandler) Manager(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	membership, err := h.orgService.GetPrimaryMembership(user.ID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	var (
		organization   *dto.OrganizationDTO
		membershipDTO  *dto.MembershipDTO
		plan           = models.DefaultPlan
		summary        = map[string]int64{}
		tickets        []models.Ticket
		recentResolved int64
	)
	if membership != nil {
		org := dto.ToOrganizationDTO(membership.Organization)
		organization = &org
		m := dto.ToMembershipDTO(*membership)
		membershipDTO = &m
		plan = membership.Organization.Plan

		if summary, err = h.ticketService.OrganizationTicketSummary(org.ID); err != nil {
			apierrors.InternalError(c, "")
			return
		}
		if tickets, err = h.ticketService.RecentOrganizationTickets(org.ID, constants.RecentOrgTicketsLimit); err != nil {
			apierrors.InternalError(c, "")
			return
		}
		if recentResolved, err = h.ticketService.ResolvedInPeriod(org.ID, constants.ResolvedPeriodDays); err != nil {
			apierrors.InternalError(c, "")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"current_user":      dto.ToUserDTO(*user),
		"organization":      organization,
		"membership":        membershipDTO,
		"organization_plan": plan,
		"summary":           summary,
		"tickets":           dto.ToTicketDTOs(tickets),
		"recent_resolved":   recentResolved,
	})
}

// Admin returns the staff management dashboard: global ticket stats plus the
// status and priority vocabularies.
func (h *DashboardHandler) Admin(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	stats, err := h.ticketService.TicketStats(nil)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_user": dto.ToUserDTO(*user),
		"statuses": []models.TicketStatus{
			models.TicketStatusOpen,
			models.TicketStatusInProgress,
			models.TicketStatusWaiting,
			models.TicketStatusResolved,
		},
		"priorities": []models.TicketPriority{
			models.TicketPriorityLow,
			models.TicketPriorityMedium,
			models.TicketPriorityHigh,
			models.TicketPriorityCritical,
		},
		"stats": stats,
	})
}

// AdminOverview returns the super-admin platform overview with per-org
// member counts.
func (h *DashboardHandler) AdminOverview(c *gin.Context) {
	overview, err := h.metricsService.Overview()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	rows, err := h.metricsService.OrganizationsWithMemberCounts()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	organizations := make([]dto.AdminOrganizationRowDTO, len(rows))
	for i, row := range rows {
		organizations[i] = dto.AdminOrganizationRowDTO{
			ID:           row.Organization.ID,
			Name:         row.Organization.Name,
			Plan:         row.Organization.Plan,
			CreatedAt:    row.Organization.CreatedAt,
			ContactEmail: row.Organization.ContactEmail,
			MemberCount:  row.MemberCount,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"overview":      overview,
		"organizations": organizations,
	})
}

// AdminUsers returns the super-admin user listing with membership counts.
func (h *DashboardHandler) AdminUsers(c *gin.Context) {
	overview, err := h.metricsService.Overview()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	rows, err := h.metricsService.UsersWithMembershipCounts()
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	users := make([]dto.AdminUserRowDTO, len(rows))
	for i, row := range rows {
		users[i] = dto.AdminUserRowDTO{
			ID:            row.User.ID,
			Email:         row.User.Email,
			FullName:      row.User.FullName,
			PrimaryRole:   row.User.PrimaryRole,
			EmailVerified: row.User.EmailVerified,
			IsActive:      row.User.IsActive,
			CreatedAt:     row.User.CreatedAt,
			MemberCount:   row.MemberCount,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": overview,
		"users":    users,
	})
}
