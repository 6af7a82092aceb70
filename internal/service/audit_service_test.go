package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/jobs"
)

type queueStub struct {
	enqueued []jobs.Job
	err      error
}

func (q *queueStub) Enqueue(job jobs.Job) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, job)
	return nil
}

type auditStoreStub struct {
	logs []models.AuditLog
	err  error
}

func (s *auditStoreStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	s.logs = append(s.logs, *log)
	return nil
}

func TestAuditServiceRecordEnqueues(t *testing.T) {
	queue := &queueStub{}
	svc := NewAuditService(queue, &auditStoreStub{}, zap.NewNop())

	svc.Record(AuditEvent{
		Actor:      employeeClaims(),
		Action:     models.AuditActionTimesheetEnter,
		Resource:   "timesheet_entry",
		ResourceID: "e1",
	})

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, models.AuditActionTimesheetEnter, queue.enqueued[0].Type)
	assert.NotEmpty(t, queue.enqueued[0].ID)
}

func TestAuditServiceHandlePersists(t *testing.T) {
	store := &auditStoreStub{}
	svc := NewAuditService(&queueStub{}, store, zap.NewNop())

	err := svc.Handle(context.Background(), jobs.Job{
		ID:   "job-1",
		Type: models.AuditActionLeaveApply,
		Payload: AuditEvent{
			Actor:      employeeClaims(),
			Action:     models.AuditActionLeaveApply,
			Resource:   "leave_application",
			ResourceID: "l1",
			NewValues:  map[string]string{"status": "PENDING"},
			IPAddress:  "10.0.0.1",
		},
	})
	require.NoError(t, err)
	require.Len(t, store.logs, 1)

	log := store.logs[0]
	assert.Equal(t, models.AuditActionLeaveApply, log.Action)
	require.NotNil(t, log.UserID)
	assert.Equal(t, "u-1", *log.UserID)
	require.NotNil(t, log.ResourceID)
	assert.Equal(t, "l1", *log.ResourceID)
	assert.JSONEq(t, `{"status":"PENDING"}`, string(log.NewValues))
	assert.Equal(t, "10.0.0.1", log.IPAddress)
}

func TestAuditServiceHandleIgnoresForeignPayload(t *testing.T) {
	store := &auditStoreStub{}
	svc := NewAuditService(&queueStub{}, store, zap.NewNop())

	err := svc.Handle(context.Background(), jobs.Job{ID: "job-2", Type: "other", Payload: "not an event"})
	require.NoError(t, err)
	assert.Empty(t, store.logs)
}
