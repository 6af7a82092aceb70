package models

import "time"

// AttachmentOwnerKind names the record type an attachment belongs to.
type AttachmentOwnerKind string

const (
	AttachmentOwnerTimesheet AttachmentOwnerKind = "TIMESHEET_ENTRY"
	AttachmentOwnerLeave     AttachmentOwnerKind = "LEAVE_APPLICATION"
	AttachmentOwnerEpic      AttachmentOwnerKind = "EPIC"
	AttachmentOwnerTask      AttachmentOwnerKind = "TASK"
)

// Attachment describes an uploaded file stored outside the database.
// FileURL joins the configured public base URL with the stored name.
type Attachment struct {
	ID          string              `db:"id" json:"id"`
	OwnerKind   AttachmentOwnerKind `db:"owner_kind" json:"-"`
	OwnerID     string              `db:"owner_id" json:"-"`
	FileName    string              `db:"file_name" json:"file_name"`
	StoredName  string              `db:"stored_name" json:"-"`
	FileURL     string              `db:"-" json:"file_url"`
	ContentType string              `db:"content_type" json:"content_type"`
	SizeBytes   int64               `db:"size_bytes" json:"size_bytes"`
	UploadedBy  string              `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt  time.Time           `db:"uploaded_at" json:"uploaded_at"`
}
