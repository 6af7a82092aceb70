package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

const taskResource = "task"

// taskCodeRetries bounds reallocation attempts when concurrent creates
// collide on the same task code.
const taskCodeRetries = 2

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type taskStore interface {
	ListEpics(ctx context.Context, filter models.TaskFilter) ([]models.Epic, int, error)
	FindEpicByCode(ctx context.Context, epicCode string) (*models.Epic, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, int, error)
	FindTaskByCode(ctx context.Context, taskCode string) (*models.Task, error)
	ListSubtasks(ctx context.Context, parentTaskCode string) ([]models.Task, error)
	ListAvailable(ctx context.Context, teamCode string, limit, offset int) ([]models.Task, int, error)
	CreateTask(ctx context.Context, task *models.Task) error
	AssignToUser(ctx context.Context, taskCode, userCode string) (int64, error)
	DeleteTask(ctx context.Context, epicCode, taskCode string) (int64, error)
	HasTimesheetReferences(ctx context.Context, taskCode string) (bool, error)
	ListTemplates(ctx context.Context) ([]models.PredefinedTaskTemplate, error)
	FindTemplateByID(ctx context.Context, id string) (*models.PredefinedTaskTemplate, error)
	NextTaskCode(ctx context.Context, epicCode string) (string, error)
}

// TaskService orchestrates epic and task workflows, including the template
// catalog and the self-assignment queue.
type TaskService struct {
	repo      taskStore
	cache     *CacheService
	audit     auditRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTaskService builds a TaskService with sane defaults.
func NewTaskService(repo taskStore, cache *CacheService, audit auditRecorder, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		repo:      repo,
		cache:     cache,
		audit:     audit,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListEpics returns a page of epics scoped to the caller's team unless the
// caller is an approver filtering explicitly.
func (s *TaskService) ListEpics(ctx context.Context, filter models.TaskFilter, claims *models.JWTClaims) (*dto.EpicListResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() {
		filter.TeamCode = claims.TeamCode
	}
	filter.Limit, filter.Offset = models.NormalizePage(filter.Limit, filter.Offset)

	epics, total, err := s.repo.ListEpics(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list epics", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list epics")
	}
	if epics == nil {
		epics = []models.Epic{}
	}
	return &dto.EpicListResponse{
		Epics:      epics,
		Pagination: *models.NewPagination(total, filter.Limit, filter.Offset, len(epics)),
	}, nil
}

// GetEpic returns one epic with its tasks.
func (s *TaskService) GetEpic(ctx context.Context, epicCode string, claims *models.JWTClaims) (*models.Epic, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	epic, err := s.repo.FindEpicByCode(ctx, epicCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "epic not found")
		}
		s.logger.Error("failed to load epic", zap.String("epic_code", epicCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load epic")
	}

	tasks, _, err := s.repo.ListTasks(ctx, models.TaskFilter{EpicCode: epicCode, Limit: 100})
	if err != nil {
		s.logger.Error("failed to list epic tasks", zap.String("epic_code", epicCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load epic")
	}
	epic.Tasks = tasks
	return epic, nil
}

// ListTasks returns a page of tasks.
func (s *TaskService) ListTasks(ctx context.Context, filter models.TaskFilter, claims *models.JWTClaims) (*dto.TaskListResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() && filter.AssigneeCode == "" {
		filter.TeamCode = claims.TeamCode
	}
	filter.Limit, filter.Offset = models.NormalizePage(filter.Limit, filter.Offset)

	tasks, total, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tasks", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return &dto.TaskListResponse{
		Tasks:      tasks,
		Pagination: *models.NewPagination(total, filter.Limit, filter.Offset, len(tasks)),
	}, nil
}

// GetTask returns one task by code.
func (s *TaskService) GetTask(ctx context.Context, taskCode string, claims *models.JWTClaims) (*models.Task, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	task, err := s.repo.FindTaskByCode(ctx, taskCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		s.logger.Error("failed to load task", zap.String("task_code", taskCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	return task, nil
}

// GetSubtask returns one subtask, verifying it actually has a parent.
func (s *TaskService) GetSubtask(ctx context.Context, subtaskCode string, claims *models.JWTClaims) (*models.Task, error) {
	task, err := s.GetTask(ctx, subtaskCode, claims)
	if err != nil {
		return nil, err
	}
	if task.ParentTaskCode == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "subtask not found")
	}
	return task, nil
}

// ListAvailable returns the open unassigned tasks of the caller's team.
func (s *TaskService) ListAvailable(ctx context.Context, limit, offset int, claims *models.JWTClaims) (*dto.TaskListResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	limit, offset = models.NormalizePage(limit, offset)

	tasks, total, err := s.repo.ListAvailable(ctx, claims.TeamCode, limit, offset)
	if err != nil {
		s.logger.Error("failed to list available tasks", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list available tasks")
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return &dto.TaskListResponse{
		Tasks:      tasks,
		Pagination: *models.NewPagination(total, limit, offset, len(tasks)),
	}, nil
}

// ListTemplates returns the predefined task template catalog, cached under
// the master-data key space.
func (s *TaskService) ListTemplates(ctx context.Context) ([]models.PredefinedTaskTemplate, error) {
	const cacheKey = "masterdata:task_templates"

	var templates []models.PredefinedTaskTemplate
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, cacheKey, &templates); hit {
			return templates, nil
		}
	}

	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		s.logger.Error("failed to list task templates", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list task templates")
	}
	if templates == nil {
		templates = []models.PredefinedTaskTemplate{}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, templates, 0)
	}
	return templates, nil
}

// GetTemplate returns one template by ID.
func (s *TaskService) GetTemplate(ctx context.Context, id string) (*models.PredefinedTaskTemplate, error) {
	template, err := s.repo.FindTemplateByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task template not found")
		}
		s.logger.Error("failed to load task template", zap.String("template_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task template")
	}
	return template, nil
}

// Create adds a task under an epic, optionally seeded from a template. The
// estimated-day figure and due date derive from the hour estimate.
func (s *TaskService) Create(ctx context.Context, req dto.CreateTaskRequest, claims *models.JWTClaims) (*models.Task, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if req.TemplateID != "" {
		template, err := s.GetTemplate(ctx, req.TemplateID)
		if err != nil {
			return nil, err
		}
		applyTemplate(&req, template)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	epic, err := s.repo.FindEpicByCode(ctx, req.EpicCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "epic not found")
		}
		s.logger.Error("failed to load epic", zap.String("epic_code", req.EpicCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load epic")
	}

	today := truncateDay(s.now())
	startDate := today
	if req.StartDate != "" {
		startDate, err = time.ParseInLocation(entryDateLayout, req.StartDate, time.UTC)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be formatted as YYYY-MM-DD")
		}
		if startDate.Before(today) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "start_date cannot be in the past")
		}
	}

	priority := models.Priority(req.Priority)
	if req.Priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown priority")
	}
	workMode := models.WorkMode(req.WorkMode)
	if req.WorkMode == "" {
		workMode = models.WorkModeOffice
	}

	estimatedDays := EstimatedDays(req.EstimatedHours)
	dueDate := DueDate(startDate, estimatedDays)

	// Code allocation and insert race between concurrent creates under one
	// epic; a loser hits the unique constraint and reallocates.
	var task *models.Task
	for attempt := 0; ; attempt++ {
		taskCode, err := s.repo.NextTaskCode(ctx, req.EpicCode)
		if err != nil {
			s.logger.Error("failed to allocate task code", zap.String("epic_code", req.EpicCode), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
		}

		task = &models.Task{
			TaskCode:       taskCode,
			EpicCode:       req.EpicCode,
			Title:          req.Title,
			Description:    req.Description,
			Status:         models.WorkStatusOpen,
			Priority:       priority,
			TeamCode:       epic.TeamCode,
			TaskTypeCode:   req.TaskTypeCode,
			WorkMode:       workMode,
			EstimatedHours: req.EstimatedHours,
			EstimatedDays:  estimatedDays,
			StartDate:      &startDate,
			DueDate:        &dueDate,
			ParentTaskCode: optional(req.ParentTaskCode),
		}
		err = s.repo.CreateTask(ctx, task)
		if err == nil {
			break
		}
		if isUniqueViolation(err) && attempt < taskCodeRetries {
			continue
		}
		s.logger.Error("failed to create task", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}

	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionTaskCreate,
			Resource:   taskResource,
			ResourceID: task.TaskCode,
			NewValues:  task,
		})
	}
	return task, nil
}

// AssignToSelf claims an open unassigned task for the caller. A concurrent
// claim loses with a conflict.
func (s *TaskService) AssignToSelf(ctx context.Context, taskCode string, claims *models.JWTClaims) (*models.Task, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	task, err := s.GetTask(ctx, taskCode, claims)
	if err != nil {
		return nil, err
	}
	if task.TeamCode != claims.TeamCode && !claims.Role.IsApprover() {
		return nil, appErrors.ErrForbidden
	}

	rows, err := s.repo.AssignToUser(ctx, taskCode, claims.UserCode)
	if err != nil {
		s.logger.Error("failed to assign task", zap.String("task_code", taskCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign task")
	}
	if rows == 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "task is no longer available")
	}

	assigned, err := s.repo.FindTaskByCode(ctx, taskCode)
	if err != nil {
		s.logger.Error("failed to reload assigned task", zap.String("task_code", taskCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}

	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionTaskSelfAssign,
			Resource:   taskResource,
			ResourceID: taskCode,
			NewValues:  assigned,
		})
	}
	return assigned, nil
}

// Delete removes a task of an epic. Tasks referenced by timesheet entries
// cannot be deleted.
func (s *TaskService) Delete(ctx context.Context, epicCode, taskCode string, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() {
		return appErrors.ErrForbidden
	}

	rows, err := s.repo.DeleteTask(ctx, epicCode, taskCode)
	if err != nil {
		s.logger.Error("failed to delete task", zap.String("task_code", taskCode), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	if rows == 0 {
		referenced, refErr := s.repo.HasTimesheetReferences(ctx, taskCode)
		if refErr != nil {
			s.logger.Error("failed to check task references", zap.String("task_code", taskCode), zap.Error(refErr))
			return appErrors.Wrap(refErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
		}
		if referenced {
			return appErrors.Clone(appErrors.ErrConflict, "task has timesheet entries and cannot be deleted")
		}
		return appErrors.Clone(appErrors.ErrNotFound, "task not found")
	}

	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionTaskDelete,
			Resource:   taskResource,
			ResourceID: taskCode,
			OldValues:  map[string]string{"epic_code": epicCode, "task_code": taskCode},
		})
	}
	return nil
}

// applyTemplate copies template defaults into empty request fields.
func applyTemplate(req *dto.CreateTaskRequest, template *models.PredefinedTaskTemplate) {
	if req.Title == "" {
		req.Title = template.Title
	}
	if req.Description == "" {
		req.Description = template.Description
	}
	if req.TaskTypeCode == "" {
		req.TaskTypeCode = template.TaskTypeCode
	}
	if req.WorkMode == "" {
		req.WorkMode = string(template.WorkMode)
	}
	if req.Priority == "" {
		req.Priority = string(template.Priority)
	}
	if req.EstimatedHours <= 0 {
		req.EstimatedHours = template.EstimatedHours
	}
}
