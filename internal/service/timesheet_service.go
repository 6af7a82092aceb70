package service

import (
	"context"
	"database/sql"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

const (
	entryDateLayout   = "2006-01-02"
	timesheetResource = "timesheet_entry"
)

type timesheetStore interface {
	List(ctx context.Context, filter models.TimesheetFilter) ([]models.TimesheetEntry, int, error)
	FindByID(ctx context.Context, id string) (*models.TimesheetEntry, error)
	Create(ctx context.Context, entry *models.TimesheetEntry) error
	UpdateDraft(ctx context.Context, entry *models.TimesheetEntry) (int64, error)
	Submit(ctx context.Context, userCode string, entryIDs []string, submittedAt time.Time) (int64, error)
	Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error)
	DailyHours(ctx context.Context, userCode string, day time.Time, excludeID string) (float64, error)
}

type taskReader interface {
	FindTaskByCode(ctx context.Context, taskCode string) (*models.Task, error)
	FindEpicByCode(ctx context.Context, epicCode string) (*models.Epic, error)
}

type ticketReader interface {
	FindByCode(ctx context.Context, ticketCode string) (*models.Ticket, error)
}

type activityReader interface {
	FindByCode(ctx context.Context, activityCode string) (*models.Activity, error)
}

type attachmentManager interface {
	SaveUploads(ctx context.Context, kind models.AttachmentOwnerKind, ownerID, uploadedBy string, files []*multipart.FileHeader) ([]models.Attachment, error)
	ListByOwner(ctx context.Context, kind models.AttachmentOwnerKind, ownerID string) ([]models.Attachment, error)
}

type auditRecorder interface {
	Record(event AuditEvent)
}

// TimesheetService orchestrates timesheet entry workflows: drafting,
// submission, and approval decisions.
type TimesheetService struct {
	repo        timesheetStore
	tasks       taskReader
	tickets     ticketReader
	activities  activityReader
	attachments attachmentManager
	audit       auditRecorder
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger

	overtimeThreshold float64
	maxDailyHours     float64
}

// NewTimesheetService builds a TimesheetService with sane defaults.
func NewTimesheetService(
	repo timesheetStore,
	tasks taskReader,
	tickets ticketReader,
	activities activityReader,
	attachments attachmentManager,
	audit auditRecorder,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	overtimeThreshold, maxDailyHours float64,
) *TimesheetService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if overtimeThreshold <= 0 {
		overtimeThreshold = 8
	}
	if maxDailyHours <= 0 {
		maxDailyHours = 24
	}
	return &TimesheetService{
		repo:              repo,
		tasks:             tasks,
		tickets:           tickets,
		activities:        activities,
		attachments:       attachments,
		audit:             audit,
		metrics:           metrics,
		validator:         validate,
		logger:            logger,
		overtimeThreshold: overtimeThreshold,
		maxDailyHours:     maxDailyHours,
	}
}

// List returns a page of entries. Employees always see their own entries;
// approvers may scope the filter to any user.
func (s *TimesheetService) List(ctx context.Context, filter models.TimesheetFilter, claims *models.JWTClaims) (*dto.TimesheetListResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() {
		filter.UserCode = claims.UserCode
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown approval status")
	}
	if filter.EntryKind != nil && !filter.EntryKind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown entry kind")
	}
	filter.Limit, filter.Offset = models.NormalizePage(filter.Limit, filter.Offset)

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list timesheet entries", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list timesheet entries")
	}
	if entries == nil {
		entries = []models.TimesheetEntry{}
	}
	return &dto.TimesheetListResponse{
		Entries:    entries,
		Pagination: *models.NewPagination(total, filter.Limit, filter.Offset, len(entries)),
	}, nil
}

// Get returns one entry with its attachments. Employees may only read their
// own entries.
func (s *TimesheetService) Get(ctx context.Context, entryID string, claims *models.JWTClaims) (*models.TimesheetEntry, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timesheet entry not found")
		}
		s.logger.Error("failed to load timesheet entry", zap.String("entry_id", entryID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timesheet entry")
	}
	if entry.UserCode != claims.UserCode && !claims.Role.IsApprover() {
		return nil, appErrors.ErrForbidden
	}
	s.attachEntryFiles(ctx, entry)
	return entry, nil
}

// Enter creates a new draft entry or rewrites an editable one. The returned
// warning is informational only; overtime never blocks the save.
func (s *TimesheetService) Enter(ctx context.Context, req dto.EnterTimesheetRequest, files []*multipart.FileHeader, claims *models.JWTClaims) (*dto.EnterTimesheetResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timesheet payload")
	}

	entryDate, err := time.ParseInLocation(entryDateLayout, req.EntryDate, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "entry_date must be formatted as YYYY-MM-DD")
	}

	if req.EntryKind != "" && !models.EntryKind(req.EntryKind).Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown entry kind")
	}

	entry := &models.TimesheetEntry{
		ID:             req.EntryID,
		UserCode:       claims.UserCode,
		EntryDate:      entryDate,
		HoursWorked:    ClampHours(req.HoursWorked, s.maxDailyHours),
		TravelTime:     ClampHours(req.TravelTime, s.maxDailyHours),
		WaitingTime:    ClampHours(req.WaitingTime, s.maxDailyHours),
		WorkLocation:   req.WorkLocation,
		Description:    req.Description,
		EntryKind:      models.EntryKind(req.EntryKind),
		EpicCode:       optional(req.EpicCode),
		TaskCode:       optional(req.TaskCode),
		TicketCode:     optional(req.TicketCode),
		ActivityCode:   optional(req.ActivityCode),
		ApprovalStatus: models.StatusDraft,
	}

	kind, err := entry.ResolveEntryKind()
	if err != nil {
		return nil, err
	}
	entry.EntryKind = kind

	if err := s.ensureReferences(ctx, entry); err != nil {
		return nil, err
	}

	if entry.ID == "" {
		if err := s.repo.Create(ctx, entry); err != nil {
			s.logger.Error("failed to create timesheet entry", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timesheet entry")
		}
	} else {
		if err := s.rewriteDraft(ctx, entry, claims); err != nil {
			return nil, err
		}
	}

	if len(files) > 0 && s.attachments != nil {
		saved, err := s.attachments.SaveUploads(ctx, models.AttachmentOwnerTimesheet, entry.ID, claims.UserCode, files)
		if err != nil {
			return nil, err
		}
		entry.Attachments = saved
	}

	if req.SubmitFlag {
		now := time.Now().UTC()
		rows, err := s.repo.Submit(ctx, claims.UserCode, []string{entry.ID}, now)
		if err != nil {
			s.logger.Error("failed to submit timesheet entry", zap.String("entry_id", entry.ID), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit timesheet entry")
		}
		if rows == 0 {
			return nil, appErrors.Clone(appErrors.ErrConflict, "entry is not submittable")
		}
		entry.ApprovalStatus = models.StatusPending
		entry.SubmittedAt = &now
	}

	warning, err := s.overtimeWarning(ctx, entry)
	if err != nil {
		s.logger.Warn("failed to compute overtime warning", zap.Error(err))
	}

	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionTimesheetEnter,
			Resource:   timesheetResource,
			ResourceID: entry.ID,
			NewValues:  entry,
		})
	}
	return &dto.EnterTimesheetResponse{Entry: *entry, Warning: warning}, nil
}

// Submit moves draft or rejected entries to PENDING. All requested entries
// must transition; a partial match aborts with a conflict.
func (s *TimesheetService) Submit(ctx context.Context, req dto.SubmitTimesheetRequest, claims *models.JWTClaims) error {
	if claims == nil {
		return appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid submit payload")
	}

	rows, err := s.repo.Submit(ctx, claims.UserCode, req.EntryIDs, time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to submit timesheet entries", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit timesheet entries")
	}
	if rows != int64(len(req.EntryIDs)) {
		return appErrors.Clone(appErrors.ErrConflict, "one or more entries are not submittable")
	}

	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionTimesheetSubmit,
			Resource:   timesheetResource,
			ResourceID: req.EntryIDs[0],
			NewValues:  map[string]interface{}{"entry_ids": req.EntryIDs},
		})
	}
	return nil
}

// Decide approves or rejects one PENDING entry. Rejection requires a
// non-empty reason; approval is terminal.
func (s *TimesheetService) Decide(ctx context.Context, req dto.DecideTimesheetRequest, claims *models.JWTClaims) (*models.TimesheetEntry, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() {
		return nil, appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision payload")
	}
	if !req.Approve && req.RejectionReason == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rejection_reason is required when rejecting")
	}

	entry, err := s.repo.FindByID(ctx, req.EntryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timesheet entry not found")
		}
		s.logger.Error("failed to load timesheet entry", zap.String("entry_id", req.EntryID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timesheet entry")
	}
	if entry.UserCode == claims.UserCode {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot decide your own entry")
	}

	status := models.StatusApproved
	var reason *string
	if !req.Approve {
		status = models.StatusRejected
		reason = &req.RejectionReason
	}

	rows, err := s.repo.Decide(ctx, req.EntryID, claims.UserCode, status, reason, time.Now().UTC())
	if err != nil {
		s.logger.Error("failed to decide timesheet entry", zap.String("entry_id", req.EntryID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decide timesheet entry")
	}
	if rows == 0 {
		return nil, appErrors.ErrFinalized
	}

	decided, err := s.repo.FindByID(ctx, req.EntryID)
	if err != nil {
		s.logger.Error("failed to reload decided entry", zap.String("entry_id", req.EntryID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timesheet entry")
	}

	if s.metrics != nil {
		s.metrics.RecordApprovalDecision(timesheetResource, req.Approve)
	}
	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionTimesheetDecide,
			Resource:   timesheetResource,
			ResourceID: req.EntryID,
			OldValues:  entry,
			NewValues:  decided,
		})
	}
	return decided, nil
}

func (s *TimesheetService) rewriteDraft(ctx context.Context, entry *models.TimesheetEntry, claims *models.JWTClaims) error {
	rows, err := s.repo.UpdateDraft(ctx, entry)
	if err != nil {
		s.logger.Error("failed to update timesheet entry", zap.String("entry_id", entry.ID), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save timesheet entry")
	}
	if rows > 0 {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, entry.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "timesheet entry not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timesheet entry")
	}
	if existing.UserCode != claims.UserCode {
		return appErrors.ErrForbidden
	}
	if existing.ApprovalStatus == models.StatusPending {
		return appErrors.Clone(appErrors.ErrConflict, "entry is pending approval")
	}
	return appErrors.ErrFinalized
}

// ensureReferences validates the codes behind the resolved kind. Only the
// codes of the active kind may be present; ResolveEntryKind already rejected
// mixed rows.
func (s *TimesheetService) ensureReferences(ctx context.Context, entry *models.TimesheetEntry) error {
	switch entry.EntryKind {
	case models.EntryKindEpicTask:
		if entry.TaskCode != nil {
			task, err := s.tasks.FindTaskByCode(ctx, *entry.TaskCode)
			if err != nil {
				if err == sql.ErrNoRows {
					return appErrors.Clone(appErrors.ErrNotFound, "task not found")
				}
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
			}
			if entry.EpicCode != nil && task.EpicCode != *entry.EpicCode {
				return appErrors.Clone(appErrors.ErrValidation, "task does not belong to the given epic")
			}
			if entry.EpicCode == nil {
				entry.EpicCode = &task.EpicCode
			}
		} else if entry.EpicCode != nil {
			if _, err := s.tasks.FindEpicByCode(ctx, *entry.EpicCode); err != nil {
				if err == sql.ErrNoRows {
					return appErrors.Clone(appErrors.ErrNotFound, "epic not found")
				}
				return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load epic")
			}
		}
	case models.EntryKindTicket:
		if _, err := s.tickets.FindByCode(ctx, *entry.TicketCode); err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "ticket not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ticket")
		}
	case models.EntryKindActivity:
		activity, err := s.activities.FindByCode(ctx, *entry.ActivityCode)
		if err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "activity not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
		}
		if !activity.Active {
			return appErrors.Clone(appErrors.ErrValidation, "activity is no longer active")
		}
	}
	return nil
}

// overtimeWarning reports when the day's total crosses the threshold, e.g.
// "Overtime: 1.0h (total 9.0h)".
func (s *TimesheetService) overtimeWarning(ctx context.Context, entry *models.TimesheetEntry) (string, error) {
	others, err := s.repo.DailyHours(ctx, entry.UserCode, entry.EntryDate, entry.ID)
	if err != nil {
		return "", err
	}
	total := others + entry.HoursWorked
	if total <= s.overtimeThreshold {
		return "", nil
	}
	return fmt.Sprintf("Overtime: %.1fh (total %.1fh)", total-s.overtimeThreshold, total), nil
}

func (s *TimesheetService) attachEntryFiles(ctx context.Context, entry *models.TimesheetEntry) {
	if s.attachments == nil {
		return
	}
	attachments, err := s.attachments.ListByOwner(ctx, models.AttachmentOwnerTimesheet, entry.ID)
	if err != nil {
		s.logger.Warn("failed to load entry attachments", zap.String("entry_id", entry.ID), zap.Error(err))
		return
	}
	entry.Attachments = attachments
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
