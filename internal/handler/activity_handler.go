package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

// ActivityHandler exposes the activity reference catalog.
type ActivityHandler struct {
	activities *service.ActivityService
}

// NewActivityHandler constructs ActivityHandler.
func NewActivityHandler(activities *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// List godoc
// @Summary List active activities
// @Tags Activities
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_activity [get]
func (h *ActivityHandler) List(c *gin.Context) {
	activities, err := h.activities.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities, nil)
}

// ListOutdoor godoc
// @Summary List active outdoor activities
// @Tags Activities
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_outdoor_activities [get]
func (h *ActivityHandler) ListOutdoor(c *gin.Context) {
	activities, err := h.activities.ListOutdoor(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities, nil)
}
