package usecase

import (
	"context"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"
	"hushh-site-backend/pkg/audit"
	"hushh-site-backend/pkg/media"

	"github.com/google/uuid"
)

// AddFiles runs the MIME/size policy over a batch. Accepted files are
// appended in their original order; rejected ones are dropped and only the
// aggregate count is reported back (the UI shows a single "some files were
// invalid" warning, never per-file detail).
func (u *draftUsecase) AddFiles(ctx context.Context, id string, files []domain.IncomingFile) (domain.AddFilesResult, error) {
	if len(files) == 0 {
		return domain.AddFilesResult{}, apperror.BadRequest("no files provided")
	}

	d, err := u.draft(id)
	if err != nil {
		return domain.AddFilesResult{}, err
	}
	d.Lock()
	defer d.Unlock()

	return u.addFilesLocked(d, files), nil
}

// addFilesLocked is the shared append path for picked files and finalized
// recordings. Callers must hold the draft lock.
func (u *draftUsecase) addFilesLocked(d *domain.Draft, files []domain.IncomingFile) domain.AddFilesResult {
	var result domain.AddFilesResult

	for _, f := range files {
		if err := media.CheckAttachment(f.MIME, int64(len(f.Data))); err != nil {
			result.Rejected++
			continue
		}
		origin := f.Origin
		if origin == "" {
			origin = domain.OriginUserPicked
		}
		d.Attachments = append(d.Attachments, domain.Attachment{
			ID:       uuid.NewString(),
			Filename: f.Filename,
			MIME:     f.MIME,
			Size:     int64(len(f.Data)),
			Origin:   origin,
			Data:     f.Data,
		})
		result.Accepted++
	}

	if result.Rejected > 0 {
		audit.Log(audit.Event{
			Event:   audit.EventAttachmentRejected,
			Subject: d.ID,
			Details: map[string]interface{}{"rejected": result.Rejected, "accepted": result.Accepted},
		})
	}

	d.LastActivity = time.Now()
	return result
}

// RemoveAttachment removes exactly one attachment by position
func (u *draftUsecase) RemoveAttachment(ctx context.Context, id string, index int) error {
	d, err := u.draft(id)
	if err != nil {
		return err
	}
	d.Lock()
	defer d.Unlock()

	if index < 0 || index >= len(d.Attachments) {
		return apperror.NotFound("attachment not found")
	}
	d.Attachments = append(d.Attachments[:index], d.Attachments[index+1:]...)
	d.LastActivity = time.Now()
	return nil
}
