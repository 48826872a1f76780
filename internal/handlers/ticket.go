package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/olangriffin/fyp-helpdesk/internal/apierrors"
	"github.com/olangriffin/fyp-helpdesk/internal/dto"
	"github.com/olangriffin/fyp-helpdesk/internal/models"
	"github.com/olangriffin/fyp-helpdesk/internal/services"
)

// TicketHandler coordinates ticket HTTP handlers.
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

func organizationScope(c *gin.Context) *string {
	if orgID := c.Query("organization_id"); orgID != "" {
		return &orgID
	}
	return nil
}

// ListTickets returns tickets, optionally scoped to an organization.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListTickets(organizationScope(c))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketDTOs(tickets))
}

// TicketStats returns status, priority, and issue-type counts.
func (h *TicketHandler) TicketStats(c *gin.Context) {
	stats, err := h.ticketService.TicketStats(organizationScope(c))
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateTicket files a new support request, auto-resolving it when a keyword
// rule matches.
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	type CreateTicketRequest struct {
		Subject           string  `json:"subject" binding:"required,min=3,max=120"`
		Description       string  `json:"description" binding:"required,min=10,max=5000"`
		IssueType         string  `json:"issue_type" binding:"required,min=3"`
		Priority          string  `json:"priority"`
		AdditionalContext string  `json:"additional_context"`
		OrganizationID    *string `json:"organization_id"`
		RequesterID       *string `json:"requester_id"`
		RequesterName     *string `json:"requester_name"`
		RequesterEmail    *string `json:"requester_email" binding:"omitempty,email"`
		AssigneeID        *string `json:"assignee_id"`
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.CreateTicket(services.CreateTicketInput{
		Subject:           req.Subject,
		Description:       req.Description,
		IssueType:         req.IssueType,
		Priority:          models.TicketPriority(req.Priority),
		AdditionalContext: req.AdditionalContext,
		OrganizationID:    req.OrganizationID,
		RequesterID:       req.RequesterID,
		RequesterName:     req.RequesterName,
		RequesterEmail:    req.RequesterEmail,
		AssigneeID:        req.AssigneeID,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTicketDTO(*ticket))
}

// GetTicket returns a single ticket.
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			apierrors.NotFound(c, "Ticket not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketDTO(*ticket))
}

// UpdateTicket applies a partial update; absent fields are left untouched.
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	type UpdateTicketRequest struct {
		Status          *models.TicketStatus   `json:"status"`
		AssigneeID      *string                `json:"assignee_id"`
		Priority        *models.TicketPriority `json:"priority"`
		ResolutionNotes *string                `json:"resolution_notes"`
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.UpdateTicket(c.Param("id"), services.UpdateTicketInput{
		Status:          req.Status,
		AssigneeID:      req.AssigneeID,
		Priority:        req.Priority,
		ResolutionNotes: req.ResolutionNotes,
	})
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			apierrors.NotFound(c, "Ticket not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketDTO(*ticket))
}
