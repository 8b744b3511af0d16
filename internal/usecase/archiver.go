package usecase

import (
	"context"
	"fmt"
	"path"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/audit"
	"hushh-site-backend/pkg/media"
	"hushh-site-backend/pkg/storage"
)

type s3Archiver struct {
	uploader   *storage.Uploader
	thumbnails bool
	maxDim     int
}

// NewS3Archiver stores attachment bytes in the archive bucket. Image
// attachments additionally get a small JPEG preview next to the original.
func NewS3Archiver(uploader *storage.Uploader, thumbnails bool, maxDim int) domain.AttachmentArchiver {
	if maxDim <= 0 {
		maxDim = 320
	}
	return &s3Archiver{
		uploader:   uploader,
		thumbnails: thumbnails,
		maxDim:     maxDim,
	}
}

func (a *s3Archiver) Archive(ctx context.Context, submissionID string, att domain.Attachment) (string, error) {
	key := path.Join("submissions", submissionID, fmt.Sprintf("%s-%s", att.ID, att.Filename))
	if err := a.uploader.Put(ctx, key, att.Data, att.MIME); err != nil {
		return "", err
	}

	if a.thumbnails && media.IsImage(att.MIME) {
		thumb, err := media.Thumbnail(att.Data, a.maxDim)
		if err != nil {
			// Preview is optional; the original made it, keep going
			audit.Log(audit.Event{
				Event:   audit.EventArchiveFailed,
				Subject: submissionID,
				Details: map[string]interface{}{"thumbnail": att.Filename, "error": err.Error()},
			})
			return key, nil
		}
		thumbKey := key + ".thumb.jpg"
		if err := a.uploader.Put(ctx, thumbKey, thumb, "image/jpeg"); err != nil {
			audit.Log(audit.Event{
				Event:   audit.EventArchiveFailed,
				Subject: submissionID,
				Details: map[string]interface{}{"thumbnail": thumbKey, "error": err.Error()},
			})
		}
	}

	return key, nil
}
