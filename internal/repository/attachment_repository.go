package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// AttachmentRepository manages attachment metadata. File bytes live on the
// storage backend; only names and sizes are recorded here.
type AttachmentRepository struct {
	db *sqlx.DB
}

// NewAttachmentRepository constructs an AttachmentRepository.
func NewAttachmentRepository(db *sqlx.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

const attachmentColumns = `id, owner_kind, owner_id, file_name, stored_name, content_type, size_bytes, uploaded_by, uploaded_at`

// Create inserts one attachment record.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}
	if attachment.UploadedAt.IsZero() {
		attachment.UploadedAt = time.Now().UTC()
	}
	const query = `INSERT INTO attachments (id, owner_kind, owner_id, file_name, stored_name, content_type, size_bytes, uploaded_by, uploaded_at)
        VALUES (:id, :owner_kind, :owner_id, :file_name, :stored_name, :content_type, :size_bytes, :uploaded_by, :uploaded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attachment); err != nil {
		return fmt.Errorf("create attachment: %w", err)
	}
	return nil
}

// FindByID fetches one attachment.
func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*models.Attachment, error) {
	query := fmt.Sprintf("SELECT %s FROM attachments WHERE id = $1", attachmentColumns)
	var attachment models.Attachment
	if err := r.db.GetContext(ctx, &attachment, query, id); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListByOwner returns all attachments of one record.
func (r *AttachmentRepository) ListByOwner(ctx context.Context, kind models.AttachmentOwnerKind, ownerID string) ([]models.Attachment, error) {
	query := fmt.Sprintf("SELECT %s FROM attachments WHERE owner_kind = $1 AND owner_id = $2 ORDER BY uploaded_at", attachmentColumns)
	var attachments []models.Attachment
	if err := r.db.SelectContext(ctx, &attachments, query, kind, ownerID); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	return attachments, nil
}

// ListOrphanedBefore returns attachments whose owner row no longer exists
// and that are older than the cutoff, candidates for cleanup.
func (r *AttachmentRepository) ListOrphanedBefore(ctx context.Context, cutoff time.Time) ([]models.Attachment, error) {
	query := fmt.Sprintf(`SELECT %s FROM attachments a WHERE a.uploaded_at < $1
        AND NOT EXISTS (SELECT 1 FROM timesheet_entries te WHERE a.owner_kind = 'TIMESHEET_ENTRY' AND te.id = a.owner_id)
        AND NOT EXISTS (SELECT 1 FROM leave_applications la WHERE a.owner_kind = 'LEAVE_APPLICATION' AND la.id = a.owner_id)
        AND NOT EXISTS (SELECT 1 FROM epics e WHERE a.owner_kind = 'EPIC' AND e.id = a.owner_id)
        AND NOT EXISTS (SELECT 1 FROM tasks t WHERE a.owner_kind = 'TASK' AND t.id = a.owner_id)`, attachmentColumns)
	var attachments []models.Attachment
	if err := r.db.SelectContext(ctx, &attachments, query, cutoff); err != nil {
		return nil, fmt.Errorf("list orphaned attachments: %w", err)
	}
	return attachments, nil
}

// Delete removes one attachment record.
func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}
