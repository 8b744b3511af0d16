package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/internal/repository/memory"
	"hushh-site-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, payload any) error {
	return m.Called(ctx, payload).Error(0)
}

func newPipeline() (domain.DraftUsecase, *memory.DraftStore, *MockDispatcher) {
	store := memory.NewDraftStore()
	dispatcher := new(MockDispatcher)
	uc := usecase.NewDraftUsecase(usecase.DraftUsecaseDeps{
		Store:        store,
		Dispatcher:   dispatcher,
		TickInterval: 10 * time.Millisecond,
	})
	return uc, store, dispatcher
}

func fillValidFields(t *testing.T, uc domain.DraftUsecase, id string) {
	t.Helper()
	ctx := context.Background()
	assert.NoError(t, uc.SetField(ctx, id, "name", "Ada Lovelace"))
	assert.NoError(t, uc.SetField(ctx, id, "email", "ada@example.com"))
	assert.NoError(t, uc.SetField(ctx, id, "message", "I would like a demo."))
}

func TestDraftDefaults(t *testing.T) {
	uc, _, _ := newPipeline()
	snap, err := uc.Create(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, domain.PreferredContactEmail, snap.Fields.PreferredContact)
	assert.Equal(t, domain.UrgencyNormal, snap.Fields.Urgency)
	assert.Equal(t, domain.DepartmentGeneral, snap.Fields.Department)
	assert.Empty(t, snap.Attachments)
	assert.False(t, snap.InFlight)
}

func TestSubmitValidation(t *testing.T) {
	uc, _, dispatcher := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)

	t.Run("Should block submission and report every missing field", func(t *testing.T) {
		errs, err := uc.Submit(ctx, snap.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "fix the highlighted fields")
		assert.Contains(t, errs, "name")
		assert.Contains(t, errs, "email")
		assert.Contains(t, errs, "message")
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("Should keep errors on the draft until edited", func(t *testing.T) {
		got, err := uc.Get(ctx, snap.ID)
		assert.NoError(t, err)
		assert.Len(t, got.Errors, 3)
	})

	t.Run("Should reject malformed email", func(t *testing.T) {
		fillValidFields(t, uc, snap.ID)
		assert.NoError(t, uc.SetField(ctx, snap.ID, "email", "not-an-email"))

		errs, err := uc.Submit(ctx, snap.ID)
		assert.Error(t, err)
		assert.Equal(t, "Please enter a valid email address", errs["email"])
		dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})
}

func TestClearOnEdit(t *testing.T) {
	uc, _, _ := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)

	_, err := uc.Submit(ctx, snap.ID)
	assert.Error(t, err)

	// Editing one field clears only that field's error
	assert.NoError(t, uc.SetField(ctx, snap.ID, "email", "ada@example.com"))

	got, _ := uc.Get(ctx, snap.ID)
	assert.NotContains(t, got.Errors, "email")
	assert.Contains(t, got.Errors, "name")
	assert.Contains(t, got.Errors, "message")
}

func TestSetFieldRules(t *testing.T) {
	uc, _, _ := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)

	t.Run("Should reject unknown field names", func(t *testing.T) {
		err := uc.SetField(ctx, snap.ID, "nickname", "ada")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field")
	})

	t.Run("Should reject invalid enum values", func(t *testing.T) {
		err := uc.SetField(ctx, snap.ID, "urgency", "apocalyptic")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid urgency value")
	})

	t.Run("Should accept valid enum values", func(t *testing.T) {
		assert.NoError(t, uc.SetField(ctx, snap.ID, "urgency", "high"))
		assert.NoError(t, uc.SetField(ctx, snap.ID, "department", "sales"))
		assert.NoError(t, uc.SetField(ctx, snap.ID, "preferred_contact", "phone"))
	})

	t.Run("Should 404 for a missing draft", func(t *testing.T) {
		err := uc.SetField(ctx, "no-such-draft", "name", "ada")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found or expired")
	})
}

func TestAttachmentStaging(t *testing.T) {
	uc, _, _ := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)

	t.Run("Should reject an empty batch", func(t *testing.T) {
		_, err := uc.AddFiles(ctx, snap.ID, nil)
		assert.Error(t, err)
	})

	t.Run("Should filter by policy and preserve order", func(t *testing.T) {
		result, err := uc.AddFiles(ctx, snap.ID, []domain.IncomingFile{
			{Filename: "brief.pdf", MIME: "application/pdf", Data: []byte("pdf")},
			{Filename: "malware.exe", MIME: "application/x-msdownload", Data: []byte("bin")},
			{Filename: "logo.png", MIME: "image/png", Data: []byte("png")},
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Accepted)
		assert.Equal(t, 1, result.Rejected)

		got, _ := uc.Get(ctx, snap.ID)
		assert.Len(t, got.Attachments, 2)
		assert.Equal(t, "brief.pdf", got.Attachments[0].Filename)
		assert.Equal(t, "logo.png", got.Attachments[1].Filename)
		assert.Equal(t, domain.OriginUserPicked, got.Attachments[0].Origin)
	})

	t.Run("Should remove by index and shift the rest", func(t *testing.T) {
		assert.NoError(t, uc.RemoveAttachment(ctx, snap.ID, 0))
		got, _ := uc.Get(ctx, snap.ID)
		assert.Len(t, got.Attachments, 1)
		assert.Equal(t, "logo.png", got.Attachments[0].Filename)
	})

	t.Run("Should 404 on an out-of-range index", func(t *testing.T) {
		err := uc.RemoveAttachment(ctx, snap.ID, 5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "attachment not found")
	})
}

func TestRecordingLifecycle(t *testing.T) {
	uc, store, _ := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)

	t.Run("Should refuse a second recording of the same kind", func(t *testing.T) {
		assert.NoError(t, uc.StartRecording(ctx, snap.ID, domain.RecordingVoice))
		err := uc.StartRecording(ctx, snap.ID, domain.RecordingVoice)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already in progress")
	})

	t.Run("Should allow voice and video sessions concurrently", func(t *testing.T) {
		assert.NoError(t, uc.StartRecording(ctx, snap.ID, domain.RecordingVideo))
	})

	t.Run("Should tick the elapsed counter while recording", func(t *testing.T) {
		time.Sleep(50 * time.Millisecond)
		d, ok := store.Get(snap.ID)
		assert.True(t, ok)
		d.Lock()
		sess := d.Recorders[domain.RecordingVoice]
		d.Unlock()
		assert.Greater(t, sess.Elapsed(), int64(0))
	})

	t.Run("Should buffer appended chunks", func(t *testing.T) {
		assert.NoError(t, uc.AppendChunk(ctx, snap.ID, domain.RecordingVoice, []byte("chunk1")))
		assert.NoError(t, uc.AppendChunk(ctx, snap.ID, domain.RecordingVoice, []byte("chunk2")))
	})

	t.Run("Should reject an empty chunk", func(t *testing.T) {
		err := uc.AppendChunk(ctx, snap.ID, domain.RecordingVoice, nil)
		assert.Error(t, err)
	})

	t.Run("Should stage the capture as an attachment on stop", func(t *testing.T) {
		att, err := uc.StopRecording(ctx, snap.ID, domain.RecordingVoice)
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(att.Filename, "voice-recording-"))
		assert.True(t, strings.HasSuffix(att.Filename, ".wav"))
		assert.Equal(t, "audio/wav", att.MIME)
		assert.Equal(t, domain.OriginVoiceRecording, att.Origin)
		assert.Equal(t, int64(len("chunk1chunk2")), att.Size)
		assert.Nil(t, att.Data)
	})

	t.Run("Should stop the duration counter after stop", func(t *testing.T) {
		d, ok := store.Get(snap.ID)
		assert.True(t, ok)
		d.Lock()
		sess := d.Recorders[domain.RecordingVoice]
		d.Unlock()

		select {
		case <-sess.Done:
		default:
			t.Fatal("expected the session's Done channel to be closed")
		}

		before := sess.Elapsed()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, before, sess.Elapsed())
	})

	t.Run("Should refuse chunks after stop", func(t *testing.T) {
		err := uc.AppendChunk(ctx, snap.ID, domain.RecordingVoice, []byte("late"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no active voice recording")
	})

	t.Run("Should refuse a double stop", func(t *testing.T) {
		_, err := uc.StopRecording(ctx, snap.ID, domain.RecordingVoice)
		assert.Error(t, err)
	})

	t.Run("Should allow recording again after stop", func(t *testing.T) {
		assert.NoError(t, uc.StartRecording(ctx, snap.ID, domain.RecordingVoice))
		assert.NoError(t, uc.AppendChunk(ctx, snap.ID, domain.RecordingVoice, []byte("take2")))
		att, err := uc.StopRecording(ctx, snap.ID, domain.RecordingVoice)
		assert.NoError(t, err)
		assert.Equal(t, int64(len("take2")), att.Size)
	})
}

func TestVideoRecordingNaming(t *testing.T) {
	uc, _, _ := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)

	assert.NoError(t, uc.StartRecording(ctx, snap.ID, domain.RecordingVideo))
	assert.NoError(t, uc.AppendChunk(ctx, snap.ID, domain.RecordingVideo, []byte{0x1a, 0x45, 0xdf, 0xa3}))

	att, err := uc.StopRecording(ctx, snap.ID, domain.RecordingVideo)
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(att.Filename, ".webm"))
	assert.Equal(t, "video/webm", att.MIME)
	assert.Equal(t, domain.OriginVideoRecording, att.Origin)
}

func TestSubmitPipeline(t *testing.T) {
	uc, _, dispatcher := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)
	fillValidFields(t, uc, snap.ID)

	_, err := uc.AddFiles(ctx, snap.ID, []domain.IncomingFile{
		{Filename: "brief.pdf", MIME: "application/pdf", Data: []byte("pdf")},
	})
	assert.NoError(t, err)

	var captured *domain.SubmissionRequest
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.SubmissionRequest)
	}).Return(nil).Once()

	errs, err := uc.Submit(ctx, snap.ID)
	assert.NoError(t, err)
	assert.Empty(t, errs)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)

	t.Run("Should synthesize the payload message", func(t *testing.T) {
		assert.Equal(t, "Ada Lovelace", captured.Name)
		assert.Equal(t, "ada@example.com", captured.Email)
		assert.True(t, captured.HasAttachments)
		assert.Equal(t, 1, captured.AttachmentCount)
		assert.Contains(t, captured.Message, "I would like a demo.")
		assert.Contains(t, captured.Message, "---")
		assert.Contains(t, captured.Message, "Attachments: 1")
		assert.Contains(t, captured.Message, "brief.pdf")
	})

	t.Run("Should reset the draft after success", func(t *testing.T) {
		got, err := uc.Get(ctx, snap.ID)
		assert.NoError(t, err)
		assert.Empty(t, got.Fields.Name)
		assert.Equal(t, domain.UrgencyNormal, got.Fields.Urgency)
		assert.Empty(t, got.Attachments)
		assert.Empty(t, got.Errors)
	})
}

func TestSubmitDispatchFailure(t *testing.T) {
	uc, store, dispatcher := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)
	fillValidFields(t, uc, snap.ID)

	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	_, err := uc.Submit(ctx, snap.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not send your message")

	t.Run("Should preserve the draft for retry", func(t *testing.T) {
		got, _ := uc.Get(ctx, snap.ID)
		assert.Equal(t, "Ada Lovelace", got.Fields.Name)
		assert.Equal(t, "I would like a demo.", got.Fields.Message)
	})

	t.Run("Should clear the in-flight flag on failure", func(t *testing.T) {
		d, _ := store.Get(snap.ID)
		d.Lock()
		inFlight := d.InFlight
		d.Unlock()
		assert.False(t, inFlight)
	})

	t.Run("Should allow an immediate retry", func(t *testing.T) {
		dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil).Once()
		_, err := uc.Submit(ctx, snap.ID)
		assert.NoError(t, err)
		dispatcher.AssertNumberOfCalls(t, "Dispatch", 2)
	})
}

func TestSubmitInFlightGuard(t *testing.T) {
	uc, store, dispatcher := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)
	fillValidFields(t, uc, snap.ID)

	d, _ := store.Get(snap.ID)
	d.Lock()
	d.InFlight = true
	d.Unlock()

	_, err := uc.Submit(ctx, snap.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

// blockingDispatcher parks inside Dispatch until released, pinning the
// draft mutex the way a slow dispatch endpoint would
type blockingDispatcher struct {
	entered chan struct{}
	release chan struct{}
}

func (d *blockingDispatcher) Dispatch(ctx context.Context, payload any) error {
	close(d.entered)
	<-d.release
	return nil
}

func TestReapSkipsBusyDrafts(t *testing.T) {
	store := memory.NewDraftStore()
	blocker := &blockingDispatcher{entered: make(chan struct{}), release: make(chan struct{})}
	uc := usecase.NewDraftUsecase(usecase.DraftUsecaseDeps{
		Store:        store,
		Dispatcher:   blocker,
		TickInterval: 10 * time.Millisecond,
	})
	ctx := context.Background()

	busy, _ := uc.Create(ctx)
	fillValidFields(t, uc, busy.ID)
	idle, _ := uc.Create(ctx)

	// Age both drafts past the TTL; only the held mutex marks the busy one
	for _, id := range []string{busy.ID, idle.ID} {
		d, _ := store.Get(id)
		d.Lock()
		d.LastActivity = time.Now().Add(-2 * time.Hour)
		d.Unlock()
	}

	submitDone := make(chan struct{})
	go func() {
		defer close(submitDone)
		_, _ = uc.Submit(ctx, busy.ID)
	}()
	<-blocker.entered

	t.Run("Should finish while a dispatch is in flight", func(t *testing.T) {
		reaped := make(chan int, 1)
		go func() { reaped <- uc.ReapIdleDrafts(time.Hour) }()

		select {
		case n := <-reaped:
			assert.Equal(t, 1, n)
		case <-time.After(time.Second):
			t.Fatal("janitor blocked on an in-flight draft")
		}
	})

	t.Run("Should keep the store responsive for other drafts", func(t *testing.T) {
		looked := make(chan struct{})
		go func() {
			defer close(looked)
			store.Get(busy.ID)
		}()
		select {
		case <-looked:
		case <-time.After(time.Second):
			t.Fatal("store lookup blocked during reap")
		}
	})

	t.Run("Should reap only the idle draft", func(t *testing.T) {
		_, err := uc.Get(ctx, idle.ID)
		assert.Error(t, err)

		_, ok := store.Get(busy.ID)
		assert.True(t, ok)
	})

	close(blocker.release)
	<-submitDone
}

func TestReapIdleDrafts(t *testing.T) {
	uc, store, _ := newPipeline()
	ctx := context.Background()
	snap, _ := uc.Create(ctx)
	assert.NoError(t, uc.StartRecording(ctx, snap.ID, domain.RecordingVoice))

	d, _ := store.Get(snap.ID)
	d.Lock()
	d.LastActivity = time.Now().Add(-2 * time.Hour)
	sess := d.Recorders[domain.RecordingVoice]
	d.Unlock()

	reaped := uc.ReapIdleDrafts(time.Hour)
	assert.Equal(t, 1, reaped)

	t.Run("Should release the recorder ticker", func(t *testing.T) {
		select {
		case <-sess.Done:
		default:
			t.Fatal("expected the recording session to be released")
		}
	})

	t.Run("Should make the draft unreachable", func(t *testing.T) {
		_, err := uc.Get(ctx, snap.ID)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found or expired")
	})

	t.Run("Should not reap fresh drafts", func(t *testing.T) {
		fresh, _ := uc.Create(ctx)
		assert.Equal(t, 0, uc.ReapIdleDrafts(time.Hour))
		_, err := uc.Get(ctx, fresh.ID)
		assert.NoError(t, err)
	})
}
