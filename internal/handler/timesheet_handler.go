package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

const dateLayout = "2006-01-02"

// TimesheetHandler exposes timesheet entry endpoints.
type TimesheetHandler struct {
	timesheets *service.TimesheetService
}

// NewTimesheetHandler constructs TimesheetHandler.
func NewTimesheetHandler(timesheets *service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{timesheets: timesheets}
}

// List godoc
// @Summary List timesheet entries
// @Tags Timesheets
// @Produce json
// @Param user_code query string false "Filter by user (approver only)"
// @Param from_date query string false "Inclusive lower bound YYYY-MM-DD"
// @Param to_date query string false "Inclusive upper bound YYYY-MM-DD"
// @Param status query string false "Approval status"
// @Param entry_kind query string false "Entry kind"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} response.Envelope
// @Router /get_timesheet_entries [get]
func (h *TimesheetHandler) List(c *gin.Context) {
	var filter models.TimesheetFilter
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
	if kind := c.Query("entry_kind"); kind != "" {
		k := models.EntryKind(kind)
		filter.EntryKind = &k
	}
	filter.Limit, filter.Offset = pageParams(c)

	result, err := h.timesheets.List(c.Request.Context(), filter, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Get one timesheet entry
// @Tags Timesheets
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} response.Envelope
// @Router /get_timesheet_entry/{entry_id} [get]
func (h *TimesheetHandler) Get(c *gin.Context) {
	entry, err := h.timesheets.Get(c.Request.Context(), c.Param("entry_id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Enter godoc
// @Summary Create or update a draft timesheet entry
// @Tags Timesheets
// @Accept mpfd
// @Produce json
// @Param entry_date formData string true "Entry date YYYY-MM-DD"
// @Param hours_worked formData number true "Hours worked"
// @Param description formData string true "Work description"
// @Param attachments formData file false "Supporting files"
// @Success 201 {object} response.Envelope
// @Router /enter_timesheet [post]
func (h *TimesheetHandler) Enter(c *gin.Context) {
	var req dto.EnterTimesheetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timesheet payload"))
		return
	}

	result, err := h.timesheets.Enter(c.Request.Context(), req, uploadedFiles(c), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusCreated
	if req.EntryID != "" {
		status = http.StatusOK
	}
	if result.Warning != "" {
		response.Message(c, status, result, result.Warning)
		return
	}
	response.JSON(c, status, result, nil)
}

// Submit godoc
// @Summary Submit draft entries for approval
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param payload body dto.SubmitTimesheetRequest true "Entry IDs"
// @Success 200 {object} response.Envelope
// @Router /submit_timesheet [post]
func (h *TimesheetHandler) Submit(c *gin.Context) {
	var req dto.SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submit payload"))
		return
	}

	if err := h.timesheets.Submit(c.Request.Context(), req, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, gin.H{"entry_ids": req.EntryIDs}, "entries submitted for approval")
}

// Decide godoc
// @Summary Approve or reject a pending entry
// @Tags Timesheets
// @Accept json
// @Produce json
// @Param payload body dto.DecideTimesheetRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Router /approve_timesheet [post]
func (h *TimesheetHandler) Decide(c *gin.Context) {
	var req dto.DecideTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	entry, err := h.timesheets.Decide(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

func uploadedFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["attachments"]
}

func dateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("from_date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "from_date must be formatted as YYYY-MM-DD")
		}
		from = &parsed
	}
	if raw := c.Query("to_date"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "to_date must be formatted as YYYY-MM-DD")
		}
		to = &parsed
	}
	return from, to, nil
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}
