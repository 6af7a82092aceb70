package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/jobs"
)

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type auditQueue interface {
	Enqueue(job jobs.Job) error
}

// AuditService records audit trail entries off the request path. Entries are
// enqueued onto the in-process worker queue and persisted asynchronously so
// a slow audit write never delays an API response.
type AuditService struct {
	queue  auditQueue
	store  auditLogger
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(queue auditQueue, store auditLogger, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{queue: queue, store: store, logger: logger}
}

// AuditEvent carries everything needed to persist one audit record.
type AuditEvent struct {
	Actor      *models.JWTClaims
	Action     string
	Resource   string
	ResourceID string
	OldValues  interface{}
	NewValues  interface{}
	IPAddress  string
	UserAgent  string
}

// Record enqueues one audit event. Failures are logged, never surfaced: the
// triggering operation has already succeeded.
func (s *AuditService) Record(event AuditEvent) {
	if s == nil || s.queue == nil {
		return
	}
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    event.Action,
		Payload: event,
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue audit event",
			zap.String("action", event.Action),
			zap.String("resource", event.Resource),
			zap.Error(err))
	}
}

// Handle is the queue handler persisting one audit event.
func (s *AuditService) Handle(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(AuditEvent)
	if !ok {
		s.logger.Error("unexpected audit payload", zap.String("job_id", job.ID))
		return nil
	}

	log := &models.AuditLog{
		Action:    event.Action,
		Resource:  event.Resource,
		IPAddress: event.IPAddress,
		UserAgent: event.UserAgent,
	}
	if event.Actor != nil {
		userID := event.Actor.UserID
		log.UserID = &userID
	}
	if event.ResourceID != "" {
		resourceID := event.ResourceID
		log.ResourceID = &resourceID
	}
	if event.OldValues != nil {
		raw, err := json.Marshal(event.OldValues)
		if err != nil {
			return fmt.Errorf("marshal audit old values: %w", err)
		}
		log.OldValues = raw
	}
	if event.NewValues != nil {
		raw, err := json.Marshal(event.NewValues)
		if err != nil {
			return fmt.Errorf("marshal audit new values: %w", err)
		}
		log.NewValues = raw
	}

	if err := s.store.CreateAuditLog(ctx, log); err != nil {
		return fmt.Errorf("persist audit log: %w", err)
	}
	return nil
}
