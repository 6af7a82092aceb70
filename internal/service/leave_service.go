package service

import (
	"context"
	"database/sql"
	"mime/multipart"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

const leaveResource = "leave_application"

type leaveStore interface {
	List(ctx context.Context, filter models.LeaveFilter) ([]models.LeaveApplication, int, error)
	FindByID(ctx context.Context, id string) (*models.LeaveApplication, error)
	Create(ctx context.Context, application *models.LeaveApplication) error
	Decide(ctx context.Context, id, approverCode string, status models.ApprovalStatus, reason *string, decidedAt time.Time) (int64, error)
	HasOverlap(ctx context.Context, userCode string, from, to time.Time) (bool, error)
}

// LeaveService orchestrates leave application workflows.
type LeaveService struct {
	repo        leaveStore
	attachments attachmentManager
	audit       auditRecorder
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewLeaveService builds a LeaveService with sane defaults.
func NewLeaveService(repo leaveStore, attachments attachmentManager, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *LeaveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		repo:        repo,
		attachments: attachments,
		audit:       audit,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List returns a page of applications. Employees see their own; approvers
// may scope the filter to any user.
func (s *LeaveService) List(ctx context.Context, filter models.LeaveFilter, claims *models.JWTClaims) (*dto.LeaveListResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() {
		filter.UserCode = claims.UserCode
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown approval status")
	}
	filter.Limit, filter.Offset = models.NormalizePage(filter.Limit, filter.Offset)

	applications, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list leave applications", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list leave applications")
	}
	if applications == nil {
		applications = []models.LeaveApplication{}
	}
	return &dto.LeaveListResponse{
		Applications: applications,
		Pagination:   *models.NewPagination(total, filter.Limit, filter.Offset, len(applications)),
	}, nil
}

// Apply submits a new leave application, immediately in PENDING state. The
// range must be ordered, entirely in the future (today allowed), and must
// not overlap an existing pending or approved application.
func (s *LeaveService) Apply(ctx context.Context, req dto.ApplyLeaveRequest, files []*multipart.FileHeader, claims *models.JWTClaims) (*models.LeaveApplication, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid leave payload")
	}

	fromDate, err := time.ParseInLocation(entryDateLayout, req.FromDate, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from_date must be formatted as YYYY-MM-DD")
	}
	toDate, err := time.ParseInLocation(entryDateLayout, req.ToDate, time.UTC)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must be formatted as YYYY-MM-DD")
	}
	if toDate.Before(fromDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must not precede from_date")
	}
	today := truncateDay(s.now())
	if fromDate.Before(today) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "leave cannot start in the past")
	}

	overlap, err := s.repo.HasOverlap(ctx, claims.UserCode, fromDate, toDate)
	if err != nil {
		s.logger.Error("failed to check leave overlap", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit leave application")
	}
	if overlap {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an overlapping leave application already exists")
	}

	now := s.now()
	application := &models.LeaveApplication{
		UserCode:       claims.UserCode,
		LeaveTypeCode:  req.LeaveTypeCode,
		FromDate:       fromDate,
		ToDate:         toDate,
		Reason:         req.Reason,
		ApprovalStatus: models.StatusPending,
		SubmittedAt:    &now,
	}
	if err := s.repo.Create(ctx, application); err != nil {
		s.logger.Error("failed to create leave application", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit leave application")
	}

	if len(files) > 0 && s.attachments != nil {
		saved, err := s.attachments.SaveUploads(ctx, models.AttachmentOwnerLeave, application.ID, claims.UserCode, files)
		if err != nil {
			return nil, err
		}
		application.Attachments = saved
	}

	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionLeaveApply,
			Resource:   leaveResource,
			ResourceID: application.ID,
			NewValues:  application,
		})
	}
	return application, nil
}

// Decide approves or rejects one PENDING application. Rejection requires a
// non-empty reason; approval is terminal.
func (s *LeaveService) Decide(ctx context.Context, req dto.DecideLeaveRequest, claims *models.JWTClaims) (*models.LeaveApplication, error) {
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

	application, err := s.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leave application not found")
		}
		s.logger.Error("failed to load leave application", zap.String("application_id", req.ApplicationID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave application")
	}
	if application.UserCode == claims.UserCode {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot decide your own application")
	}

	status := models.StatusApproved
	var reason *string
	if !req.Approve {
		status = models.StatusRejected
		reason = &req.RejectionReason
	}

	rows, err := s.repo.Decide(ctx, req.ApplicationID, claims.UserCode, status, reason, s.now())
	if err != nil {
		s.logger.Error("failed to decide leave application", zap.String("application_id", req.ApplicationID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decide leave application")
	}
	if rows == 0 {
		return nil, appErrors.ErrFinalized
	}

	decided, err := s.repo.FindByID(ctx, req.ApplicationID)
	if err != nil {
		s.logger.Error("failed to reload decided application", zap.String("application_id", req.ApplicationID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load leave application")
	}

	if s.metrics != nil {
		s.metrics.RecordApprovalDecision(leaveResource, req.Approve)
	}
	if s.audit != nil {
		s.audit.Record(AuditEvent{
			Actor:      claims,
			Action:     models.AuditActionLeaveDecide,
			Resource:   leaveResource,
			ResourceID: req.ApplicationID,
			OldValues:  application,
			NewValues:  decided,
		})
	}
	return decided, nil
}
