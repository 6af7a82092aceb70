package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/service"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/response"
)

// TaskHandler exposes epic, task, and template endpoints.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler constructs TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

func taskFilter(c *gin.Context) models.TaskFilter {
	var filter models.TaskFilter
	filter.EpicCode = c.Query("epic_code")
	filter.AssigneeCode = c.Query("assignee_code")
	filter.TeamCode = c.Query("team_code")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if status := c.Query("status"); status != "" {
		s := models.WorkStatus(status)
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.Priority(priority)
		filter.Priority = &p
	}
	filter.Limit, filter.Offset = pageParams(c)
	return filter
}

// ListEpics godoc
// @Summary List epics
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_epics [get]
func (h *TaskHandler) ListEpics(c *gin.Context) {
	result, err := h.tasks.ListEpics(c.Request.Context(), taskFilter(c), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetEpic godoc
// @Summary Get one epic with its tasks
// @Tags Tasks
// @Produce json
// @Param epic_id path string true "Epic code"
// @Success 200 {object} response.Envelope
// @Router /get_epics/{epic_id} [get]
func (h *TaskHandler) GetEpic(c *gin.Context) {
	epic, err := h.tasks.GetEpic(c.Request.Context(), c.Param("epic_id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, epic, nil)
}

// ListTasks godoc
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	result, err := h.tasks.ListTasks(c.Request.Context(), taskFilter(c), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetTask godoc
// @Summary Get one task
// @Tags Tasks
// @Produce json
// @Param task_id path string true "Task code"
// @Success 200 {object} response.Envelope
// @Router /get_task/{task_id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c.Request.Context(), c.Param("task_id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// GetSubtask godoc
// @Summary Get one subtask
// @Tags Tasks
// @Produce json
// @Param subtask_id path string true "Subtask code"
// @Success 200 {object} response.Envelope
// @Router /get_subtask/{subtask_id} [get]
func (h *TaskHandler) GetSubtask(c *gin.Context) {
	task, err := h.tasks.GetSubtask(c.Request.Context(), c.Param("subtask_id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// ListAvailable godoc
// @Summary List unassigned open tasks for the caller's team
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_tasks/available [get]
func (h *TaskHandler) ListAvailable(c *gin.Context) {
	limit, offset := pageParams(c)
	result, err := h.tasks.ListAvailable(c.Request.Context(), limit, offset, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListTemplates godoc
// @Summary List predefined task templates
// @Tags Tasks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /get_predefined_epics [get]
func (h *TaskHandler) ListTemplates(c *gin.Context) {
	templates, err := h.tasks.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, templates, nil)
}

// GetTemplate godoc
// @Summary Get one predefined task template
// @Tags Tasks
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} response.Envelope
// @Router /get_predefined_epics/{id} [get]
func (h *TaskHandler) GetTemplate(c *gin.Context) {
	template, err := h.tasks.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, template, nil)
}

// Create godoc
// @Summary Create a task under an epic
// @Tags Tasks
// @Accept json
// @Produce json
// @Param payload body dto.CreateTaskRequest true "Task payload"
// @Success 201 {object} response.Envelope
// @Router /create_task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid task payload"))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// AssignToSelf godoc
// @Summary Claim an open unassigned task
// @Tags Tasks
// @Produce json
// @Param task_id path string true "Task code"
// @Success 200 {object} response.Envelope
// @Router /assign_task_to_self/{task_id} [post]
func (h *TaskHandler) AssignToSelf(c *gin.Context) {
	task, err := h.tasks.AssignToSelf(c.Request.Context(), c.Param("task_id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, task, nil)
}

// Delete godoc
// @Summary Delete a task of an epic
// @Tags Tasks
// @Produce json
// @Param epic_id path string true "Epic code"
// @Param task_id path string true "Task code"
// @Success 204 {object} response.Envelope
// @Router /delete_task/{epic_id}/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), c.Param("epic_id"), c.Param("task_id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
