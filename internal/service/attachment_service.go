package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
	"github.com/shubham1234-glitch/Timesheet-sub000/pkg/jobs"
)

type attachmentStore interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	FindByID(ctx context.Context, id string) (*models.Attachment, error)
	ListByOwner(ctx context.Context, kind models.AttachmentOwnerKind, ownerID string) ([]models.Attachment, error)
	ListOrphanedBefore(ctx context.Context, cutoff time.Time) ([]models.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type attachmentBlobStore interface {
	SaveStream(storedName string, r io.Reader) (int64, error)
	Open(storedName string) (*os.File, error)
	Delete(storedName string) error
	FileURL(storedName string) string
}

type attachmentSigner interface {
	Generate(attachmentID, storedName string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (attachmentID, storedName string, expiresAt time.Time, err error)
}

// AttachmentService stores uploaded files on the blob backend and their
// metadata in the database, and issues signed download tokens.
type AttachmentService struct {
	store        attachmentStore
	blobs        attachmentBlobStore
	signer       attachmentSigner
	downloadPath string
	maxBytes     int64
	logger       *zap.Logger
}

// NewAttachmentService constructs an AttachmentService. downloadPath is the
// route prefix signed tokens are served under, e.g. /api/v1/timesheet/attachments.
func NewAttachmentService(store attachmentStore, blobs attachmentBlobStore, signer attachmentSigner, downloadPath string, maxBytes int64, logger *zap.Logger) *AttachmentService {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttachmentService{store: store, blobs: blobs, signer: signer, downloadPath: strings.TrimRight(downloadPath, "/"), maxBytes: maxBytes, logger: logger}
}

// SaveUploads persists each multipart file and records its metadata against
// the owning record. Oversized files are rejected before any write.
func (s *AttachmentService) SaveUploads(ctx context.Context, kind models.AttachmentOwnerKind, ownerID, uploadedBy string, files []*multipart.FileHeader) ([]models.Attachment, error) {
	for _, header := range files {
		if header.Size > s.maxBytes {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file %s exceeds the %d byte limit", header.Filename, s.maxBytes))
		}
	}

	saved := make([]models.Attachment, 0, len(files))
	for _, header := range files {
		attachment, err := s.saveOne(ctx, kind, ownerID, uploadedBy, header)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *attachment)
	}
	return saved, nil
}

func (s *AttachmentService) saveOne(ctx context.Context, kind models.AttachmentOwnerKind, ownerID, uploadedBy string, header *multipart.FileHeader) (*models.Attachment, error) {
	src, err := header.Open()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read uploaded file")
	}
	defer src.Close() //nolint:errcheck

	id := uuid.NewString()
	storedName := fmt.Sprintf("%s/%s%s", time.Now().UTC().Format("2006/01"), id, filepath.Ext(header.Filename))

	written, err := s.blobs.SaveStream(storedName, src)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
	}

	attachment := &models.Attachment{
		ID:          id,
		OwnerKind:   kind,
		OwnerID:     ownerID,
		FileName:    header.Filename,
		StoredName:  storedName,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   written,
		UploadedBy:  uploadedBy,
	}
	if err := s.store.Create(ctx, attachment); err != nil {
		if cleanupErr := s.blobs.Delete(storedName); cleanupErr != nil {
			s.logger.Warn("failed to remove orphaned attachment file", zap.String("stored_name", storedName), zap.Error(cleanupErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attachment")
	}
	attachment.FileURL = s.blobs.FileURL(storedName)
	return attachment, nil
}

// ListByOwner returns an owner's attachments with signed download URLs.
func (s *AttachmentService) ListByOwner(ctx context.Context, kind models.AttachmentOwnerKind, ownerID string) ([]models.Attachment, error) {
	attachments, err := s.store.ListByOwner(ctx, kind, ownerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attachments")
	}
	for i := range attachments {
		token, _, err := s.signer.Generate(attachments[i].ID, attachments[i].StoredName)
		if err != nil {
			s.logger.Warn("failed to sign attachment url", zap.String("attachment_id", attachments[i].ID), zap.Error(err))
			continue
		}
		attachments[i].FileURL = s.downloadPath + "/" + token
	}
	return attachments, nil
}

// OpenByToken validates a signed token and opens the underlying file.
func (s *AttachmentService) OpenByToken(ctx context.Context, token string) (*models.Attachment, *os.File, error) {
	attachmentID, storedName, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	attachment, err := s.store.FindByID(ctx, attachmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "attachment not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attachment")
	}
	if attachment.StoredName != storedName {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	file, err := s.blobs.Open(attachment.StoredName)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open attachment")
	}
	return attachment, file, nil
}

// HandleCleanup is the queue handler deleting orphaned attachments older
// than the retention cutoff carried in the job payload.
func (s *AttachmentService) HandleCleanup(ctx context.Context, job jobs.Job) error {
	cutoff, ok := job.Payload.(time.Time)
	if !ok {
		cutoff = time.Now().UTC().Add(-30 * 24 * time.Hour)
	}
	orphans, err := s.store.ListOrphanedBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list orphaned attachments: %w", err)
	}
	for _, orphan := range orphans {
		if err := s.blobs.Delete(orphan.StoredName); err != nil {
			s.logger.Warn("failed to delete orphaned file", zap.String("stored_name", orphan.StoredName), zap.Error(err))
			continue
		}
		if err := s.store.Delete(ctx, orphan.ID); err != nil {
			s.logger.Warn("failed to delete orphaned record", zap.String("attachment_id", orphan.ID), zap.Error(err))
		}
	}
	if len(orphans) > 0 {
		s.logger.Info("attachment cleanup finished", zap.Int("deleted", len(orphans)))
	}
	return nil
}
