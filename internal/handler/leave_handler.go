package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

// LeaveHandler exposes leave application endpoints.
type LeaveHandler struct {
	leave *service.LeaveService
}

// NewLeaveHandler constructs LeaveHandler.
func NewLeaveHandler(leave *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leave: leave}
}

// List godoc
// @Summary List leave applications
// @Tags Leave
// @Produce json
// @Param user_code query string false "Filter by user (approver only)"
// @Param from_date query string false "Overlap lower bound YYYY-MM-DD"
// @Param to_date query string false "Overlap upper bound YYYY-MM-DD"
// @Param status query string false "Approval status"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.Envelope
// @Router /get_leave_applications [get]
func (h *LeaveHandler) List(c *gin.Context) {
	var filter models.LeaveFilter
	filter.UserCode = c.Query("user_code")
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filter.FromDate = from
	filter.ToDate = to
	if status := c.Query("status"); status != "" {
		s := models.ApprovalStatus(status)
		filter.Status = &s
	}
	filter.Limit, filter.Offset = pageParams(c)

	result, err := h.leave.List(c.Request.Context(), filter, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Apply godoc
// @Summary Submit a leave application
// @Tags Leave
// @Accept mpfd
// @Produce json
// @Param leave_type_code formData string true "Leave type"
// @Param from_date formData string true "First day YYYY-MM-DD"
// @Param to_date formData string true "Last day YYYY-MM-DD"
// @Param reason formData string true "Reason"
// @Param attachments formData file false "Supporting files"
// @Success 201 {object} response.Envelope
// @Router /apply_leave [post]
func (h *LeaveHandler) Apply(c *gin.Context) {
	var req dto.ApplyLeaveRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid leave payload"))
		return
	}

	application, err := h.leave.Apply(c.Request.Context(), req, uploadedFiles(c), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, application)
}

// Decide godoc
// @Summary Approve or reject a pending leave application
// @Tags Leave
// @Accept json
// @Produce json
// @Param payload body dto.DecideLeaveRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /approve_leave [post]
func (h *LeaveHandler) Decide(c *gin.Context) {
	var req dto.DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	application, err := h.leave.Decide(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, application, nil)
}
