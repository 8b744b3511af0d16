package domain

import (
	"context"
	"time"
)

// Submission is the archived record of a successfully dispatched contact
// message. It is written after the remote dispatch succeeds; archive
// failures never surface to the visitor.
type Submission struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Company          string    `json:"company,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Subject          string    `json:"subject,omitempty"`
	Message          string    `json:"message"`
	PreferredContact string    `json:"preferred_contact"`
	Urgency          string    `json:"urgency"`
	Department       string    `json:"department"`
	AttachmentCount  int       `json:"attachment_count"`
	AttachmentNames  []string  `json:"attachment_names,omitempty"`
	AttachmentMIMEs  []string  `json:"attachment_mimes,omitempty"`
	AttachmentBytes  int64     `json:"attachment_bytes"`
	StorageKeys      []string  `json:"storage_keys,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// SubmissionRepository persists dispatched submissions
type SubmissionRepository interface {
	Create(ctx context.Context, sub *Submission) error
	List(ctx context.Context, limit, offset int) ([]Submission, int, error)
}

// PaginatedSubmissions is the admin listing page
type PaginatedSubmissions struct {
	Items    []Submission `json:"items"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

// AdminUsecase exposes the archived submissions to back-office users
type AdminUsecase interface {
	ListSubmissions(ctx context.Context, page, pageSize int) (*PaginatedSubmissions, error)
	// ExportSubmissions renders the archive as xlsx or csv.
	// Returns file bytes, a suggested filename and the content type.
	ExportSubmissions(ctx context.Context, format string) ([]byte, string, string, error)
}

// AttachmentArchiver stores attachment bytes after a successful dispatch.
// The dispatch payload itself never carries bytes (see SubmissionRequest);
// archiving is a deliberately separate concern.
type AttachmentArchiver interface {
	Archive(ctx context.Context, submissionID string, att Attachment) (key string, err error)
}
