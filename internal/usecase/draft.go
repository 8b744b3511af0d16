package usecase

import (
	"context"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"
	"hushh-site-backend/pkg/audit"

	"github.com/google/uuid"
)

// DraftUsecaseDeps wires the pipeline's collaborators. Submissions and
// Archiver are optional: without them a successful dispatch simply leaves
// no archive trail. TickInterval defaults to one second and exists so tests
// can observe recorder ticks without real-time waits.
type DraftUsecaseDeps struct {
	Store        domain.DraftStore
	Dispatcher   domain.Dispatcher
	Submissions  domain.SubmissionRepository
	Archiver     domain.AttachmentArchiver
	TickInterval time.Duration
}

type draftUsecase struct {
	store       domain.DraftStore
	dispatcher  domain.Dispatcher
	submissions domain.SubmissionRepository
	archiver    domain.AttachmentArchiver
	tick        time.Duration
}

// NewDraftUsecase creates the multi-modal contact pipeline usecase
func NewDraftUsecase(deps DraftUsecaseDeps) domain.DraftUsecase {
	tick := deps.TickInterval
	if tick <= 0 {
		tick = time.Second
	}
	return &draftUsecase{
		store:       deps.Store,
		dispatcher:  deps.Dispatcher,
		submissions: deps.Submissions,
		archiver:    deps.Archiver,
		tick:        tick,
	}
}

// Create starts a fresh draft with default field values
func (u *draftUsecase) Create(ctx context.Context) (*domain.DraftSnapshot, error) {
	now := time.Now()
	d := &domain.Draft{
		ID:           uuid.NewString(),
		Fields:       domain.DefaultFormFields(),
		Errors:       domain.ValidationErrors{},
		Recorders:    make(map[domain.RecordingKind]*domain.RecordingSession),
		CreatedAt:    now,
		LastActivity: now,
	}
	u.store.Put(d)
	return snapshot(d), nil
}

// Get returns the current state of a draft
func (u *draftUsecase) Get(ctx context.Context, id string) (*domain.DraftSnapshot, error) {
	d, err := u.draft(id)
	if err != nil {
		return nil, err
	}
	d.Lock()
	defer d.Unlock()
	return snapshot(d), nil
}

// SetField updates one form field. Per the clear-on-edit policy the field's
// validation error (if any) is removed; nothing is revalidated until the
// next submit attempt.
func (u *draftUsecase) SetField(ctx context.Context, id, field, value string) error {
	d, err := u.draft(id)
	if err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()

	if err := applyField(&d.Fields, field, value); err != nil {
		return err
	}
	delete(d.Errors, field)
	d.LastActivity = time.Now()
	return nil
}

// ReapIdleDrafts drops drafts idle past the TTL and releases any recorder
// tickers they still hold. Returns the number of drafts reaped.
func (u *draftUsecase) ReapIdleDrafts(ttl time.Duration) int {
	reaped := u.store.ReapIdle(ttl)
	for _, d := range reaped {
		d.Lock()
		releaseRecorders(d)
		d.Unlock()
		audit.Log(audit.Event{
			Event:   audit.EventDraftReaped,
			Subject: d.ID,
			Details: map[string]interface{}{"idle_minutes": int(ttl.Minutes())},
		})
	}
	return len(reaped)
}

func (u *draftUsecase) draft(id string) (*domain.Draft, error) {
	d, ok := u.store.Get(id)
	if !ok {
		return nil, apperror.NotFound("contact draft not found or expired")
	}
	return d, nil
}

// releaseRecorders stops any live ticker and clears the recorder slots.
// Callers must hold the draft lock.
func releaseRecorders(d *domain.Draft) {
	for _, sess := range d.Recorders {
		if sess.State == domain.RecordingActive {
			close(sess.Done)
			sess.State = domain.RecordingStopped
		}
	}
	d.Recorders = make(map[domain.RecordingKind]*domain.RecordingSession)
}

// snapshot builds the API view. Callers must hold the draft lock.
func snapshot(d *domain.Draft) *domain.DraftSnapshot {
	atts := make([]domain.Attachment, len(d.Attachments))
	for i, a := range d.Attachments {
		a.Data = nil
		atts[i] = a
	}

	var recs []domain.RecorderSnapshot
	for _, sess := range d.Recorders {
		recs = append(recs, domain.RecorderSnapshot{
			Kind:    sess.Kind,
			State:   sess.State,
			Elapsed: sess.Elapsed(),
			Size:    int64(len(sess.Data)),
		})
	}

	return &domain.DraftSnapshot{
		ID:          d.ID,
		Fields:      d.Fields,
		Errors:      d.Errors,
		Attachments: atts,
		Recorders:   recs,
		InFlight:    d.InFlight,
		CreatedAt:   d.CreatedAt,
	}
}
