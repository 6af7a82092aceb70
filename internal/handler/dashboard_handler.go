package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/middleware"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

// DashboardHandler exposes the aggregated dashboard endpoints.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Personal godoc
// @Summary Personal timesheet dashboard
// @Tags Dashboards
// @Produce json
// @Param from_date query string false "Inclusive lower bound YYYY-MM-DD"
// @Param to_date query string false "Inclusive upper bound YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /get_dashboard_data [get]
func (h *DashboardHandler) Personal(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.dashboards.Personal(c.Request.Context(), deref(from), deref(to), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// Team godoc
// @Summary Team dashboard for approvers
// @Tags Dashboards
// @Produce json
// @Param team_code query string false "Team code, defaults to the caller's team"
// @Param from_date query string false "Inclusive lower bound YYYY-MM-DD"
// @Param to_date query string false "Inclusive upper bound YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /get_team_dashboard_data [get]
func (h *DashboardHandler) Team(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.dashboards.Team(c.Request.Context(), c.Query("team_code"), deref(from), deref(to), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// SuperAdmin godoc
// @Summary Organization-wide dashboard
// @Tags Dashboards
// @Produce json
// @Param from_date query string false "Inclusive lower bound YYYY-MM-DD"
// @Param to_date query string false "Inclusive upper bound YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Router /get_super_admin_dashboard_data [get]
func (h *DashboardHandler) SuperAdmin(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.dashboards.SuperAdmin(c.Request.Context(), deref(from), deref(to), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
