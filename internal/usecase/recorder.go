package usecase

import (
	"context"
	"fmt"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"
)

// StartRecording opens a new capture session of the given kind. At most one
// session per kind may be recording on a draft; voice and video sessions
// may run concurrently, matching the original behavior of the two modals.
func (u *draftUsecase) StartRecording(ctx context.Context, id string, kind domain.RecordingKind) error {
	d, err := u.draft(id)
	if err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()

	if sess, ok := d.Recorders[kind]; ok && sess.State == domain.RecordingActive {
		return apperror.Conflict(fmt.Sprintf("a %s recording is already in progress", kind))
	}

	// A stopped session is terminal; recording again replaces it
	sess := domain.NewRecordingSession(kind)
	d.Recorders[kind] = sess
	d.LastActivity = time.Now()

	go u.runTicker(sess)
	return nil
}

// runTicker advances the session's display counter once per tick until the
// session's Done channel closes. Every exit path (explicit stop, janitor
// reap) closes Done exactly once, so the goroutine can never leak.
func (u *draftUsecase) runTicker(sess *domain.RecordingSession) {
	ticker := time.NewTicker(u.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sess.Tick()
		case <-sess.Done:
			return
		}
	}
}

// AppendChunk buffers captured bytes while the session is recording
func (u *draftUsecase) AppendChunk(ctx context.Context, id string, kind domain.RecordingKind, data []byte) error {
	if len(data) == 0 {
		return apperror.BadRequest("empty chunk")
	}

	d, err := u.draft(id)
	if err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()

	sess, ok := d.Recorders[kind]
	if !ok || sess.State != domain.RecordingActive {
		return apperror.Conflict(fmt.Sprintf("no active %s recording", kind))
	}

	sess.Data = append(sess.Data, data...)
	d.LastActivity = time.Now()
	return nil
}

// StopRecording finalizes the captured bytes into a single attachment and
// hands it to the attachment staging path. Closing the recording modal
// takes this same route: once recording has started there is no
// discard-without-saving path.
func (u *draftUsecase) StopRecording(ctx context.Context, id string, kind domain.RecordingKind) (*domain.Attachment, error) {
	d, err := u.draft(id)
	if err != nil {
		return nil, err
	}
	d.Lock()
	defer d.Unlock()

	sess, ok := d.Recorders[kind]
	if !ok || sess.State != domain.RecordingActive {
		return nil, apperror.Conflict(fmt.Sprintf("no active %s recording to stop", kind))
	}

	close(sess.Done)
	sess.State = domain.RecordingStopped

	file := finalizeRecording(sess)
	result := u.addFilesLocked(d, []domain.IncomingFile{file})
	if result.Accepted == 0 {
		return nil, apperror.BadRequest("recording exceeded the attachment size limit")
	}

	att := d.Attachments[len(d.Attachments)-1]
	att.Data = nil
	return &att, nil
}

// finalizeRecording shapes the buffered capture into an incoming file.
// The timestamped filename guarantees uniqueness within a session.
func finalizeRecording(sess *domain.RecordingSession) domain.IncomingFile {
	ts := time.Now().UnixMilli()
	switch sess.Kind {
	case domain.RecordingVideo:
		return domain.IncomingFile{
			Filename: fmt.Sprintf("video-recording-%d.webm", ts),
			MIME:     "video/webm",
			Data:     sess.Data,
			Origin:   domain.OriginVideoRecording,
		}
	default:
		return domain.IncomingFile{
			Filename: fmt.Sprintf("voice-recording-%d.wav", ts),
			MIME:     "audio/wav",
			Data:     sess.Data,
			Origin:   domain.OriginVoiceRecording,
		}
	}
}
