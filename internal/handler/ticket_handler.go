package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

// TicketHandler exposes the support ticket mirror.
type TicketHandler struct {
	tickets *service.TicketService
}

// NewTicketHandler constructs TicketHandler.
func NewTicketHandler(tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// List godoc
// @Summary List tickets
// @Tags Tickets
// @Produce json
// @Param status query string false "Ticket status"
// @Param assignee_code query string false "Assignee"
// @Param search query string false "Search subject or requester"
// @Success 200 {object} response.Envelope
// @Router /get_tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	var filter models.TicketFilter
	filter.Status = c.Query("status")
	filter.AssigneeCode = c.Query("assignee_code")
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Limit, filter.Offset = pageParams(c)

	result, err := h.tickets.List(c.Request.Context(), filter, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get one ticket
// @Tags Tickets
// @Produce json
// @Param ticket_code path string true "Ticket code"
// @Success 200 {object} response.Envelope
// @Router /get_ticket/{ticket_code} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.tickets.Get(c.Request.Context(), c.Param("ticket_code"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ticket, nil)
}
