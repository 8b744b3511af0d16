package domain

import (
	"context"
	"sync"
	"time"
)

// Draft is one visitor's in-progress contact form: field values, current
// validation errors, staged attachments and any recorder sessions. HTTP
// requests stand in for the browser event loop, so the embedded mutex
// serializes all mutations of a single draft.
type Draft struct {
	sync.Mutex `json:"-"`

	ID           string
	Fields       FormFields
	Errors       ValidationErrors
	Attachments  []Attachment
	Recorders    map[RecordingKind]*RecordingSession
	InFlight     bool
	CreatedAt    time.Time
	LastActivity time.Time
}

// DraftSnapshot is the API view of a draft (no attachment bytes)
type DraftSnapshot struct {
	ID          string             `json:"id"`
	Fields      FormFields         `json:"fields"`
	Errors      ValidationErrors   `json:"errors,omitempty"`
	Attachments []Attachment       `json:"attachments"`
	Recorders   []RecorderSnapshot `json:"recorders,omitempty"`
	InFlight    bool               `json:"in_flight"`
	CreatedAt   time.Time          `json:"created_at"`
}

// DraftStore holds live drafts. Drafts are ephemeral by design: they are
// never written to durable storage, and idle ones are reaped.
type DraftStore interface {
	Put(draft *Draft)
	Get(id string) (*Draft, bool)
	Delete(id string)
	// ReapIdle removes and returns every draft whose last activity is older
	// than the given TTL, so the caller can release recorder resources.
	ReapIdle(ttl time.Duration) []*Draft
}

// DraftUsecase is the full multi-modal contact pipeline: form state,
// attachment staging, recording sessions and submission.
type DraftUsecase interface {
	Create(ctx context.Context) (*DraftSnapshot, error)
	Get(ctx context.Context, id string) (*DraftSnapshot, error)
	SetField(ctx context.Context, id, field, value string) error
	AddFiles(ctx context.Context, id string, files []IncomingFile) (AddFilesResult, error)
	RemoveAttachment(ctx context.Context, id string, index int) error
	StartRecording(ctx context.Context, id string, kind RecordingKind) error
	AppendChunk(ctx context.Context, id string, kind RecordingKind, data []byte) error
	StopRecording(ctx context.Context, id string, kind RecordingKind) (*Attachment, error)
	// Submit validates, dispatches and resets the draft. On validation
	// failure it returns the per-field errors alongside the error.
	Submit(ctx context.Context, id string) (ValidationErrors, error)
	// ReapIdleDrafts releases drafts idle past the TTL (janitor entrypoint)
	ReapIdleDrafts(ttl time.Duration) int
}
