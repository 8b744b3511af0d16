package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"
	"hushh-site-backend/pkg/audit"

	"github.com/google/uuid"
)

// Submit runs the submission pipeline: validate, dispatch exactly one POST,
// then reset the draft on success. On any dispatch failure the draft is
// left untouched so the visitor can retry without re-entering anything.
func (u *draftUsecase) Submit(ctx context.Context, id string) (domain.ValidationErrors, error) {
	d, err := u.draft(id)
	if err != nil {
		return nil, err
	}
	d.Lock()
	defer d.Unlock()

	if d.InFlight {
		return nil, apperror.Conflict("a submission is already in progress")
	}

	errs, ok := ValidateFields(d.Fields)
	if !ok {
		d.Errors = errs
		return errs, apperror.BadRequest("Please fix the highlighted fields and try again")
	}
	d.Errors = domain.ValidationErrors{}

	d.InFlight = true
	defer func() { d.InFlight = false }()

	req := buildSubmissionRequest(d.Fields, d.Attachments)
	if err := u.dispatcher.Dispatch(ctx, req); err != nil {
		audit.Log(audit.Event{
			Event:   audit.EventDispatchFailed,
			Subject: d.ID,
			Details: map[string]interface{}{"error": err.Error()},
		})
		return nil, apperror.BadGateway(
			"We could not send your message right now. Please try again or email us directly.", err)
	}

	archiveSubmission(ctx, u.submissions, u.archiver, req, d.Attachments)

	// Successful submission resets the whole draft to its initial state
	releaseRecorders(d)
	d.Fields = domain.DefaultFormFields()
	d.Attachments = nil
	d.Errors = domain.ValidationErrors{}
	d.LastActivity = time.Now()

	return nil, nil
}

// buildSubmissionRequest assembles the dispatch payload. The routing
// context (preferred contact, urgency, department, attachment summary) is
// appended to the visitor's free text so the resulting email is
// self-contained; attachment bytes themselves never travel here.
func buildSubmissionRequest(f domain.FormFields, atts []domain.Attachment) *domain.SubmissionRequest {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(f.Message))
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "Preferred contact: %s\n", f.PreferredContact)
	fmt.Fprintf(&b, "Urgency: %s\n", f.Urgency)
	fmt.Fprintf(&b, "Department: %s\n", f.Department)
	fmt.Fprintf(&b, "Attachments: %d\n", len(atts))
	for _, a := range atts {
		fmt.Fprintf(&b, "- %s (%s, %d bytes)\n", a.Filename, a.MIME, a.Size)
	}

	return &domain.SubmissionRequest{
		Name:             strings.TrimSpace(f.Name),
		Email:            strings.TrimSpace(f.Email),
		Company:          strings.TrimSpace(f.Company),
		Phone:            strings.TrimSpace(f.Phone),
		Subject:          strings.TrimSpace(f.Subject),
		Message:          b.String(),
		PreferredContact: string(f.PreferredContact),
		Urgency:          string(f.Urgency),
		Department:       string(f.Department),
		HasAttachments:   len(atts) > 0,
		AttachmentCount:  len(atts),
	}
}

// archiveSubmission records the dispatched message and stores attachment
// bytes when an archiver is configured. Strictly best-effort: the visitor
// already got their success answer, so failures are only audited.
func archiveSubmission(ctx context.Context, repo domain.SubmissionRepository, archiver domain.AttachmentArchiver, req *domain.SubmissionRequest, atts []domain.Attachment) {
	if repo == nil && archiver == nil {
		return
	}

	sub := &domain.Submission{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Email:            req.Email,
		Company:          req.Company,
		Phone:            req.Phone,
		Subject:          req.Subject,
		Message:          req.Message,
		PreferredContact: req.PreferredContact,
		Urgency:          req.Urgency,
		Department:       req.Department,
		AttachmentCount:  len(atts),
		CreatedAt:        time.Now(),
	}

	for _, a := range atts {
		sub.AttachmentNames = append(sub.AttachmentNames, a.Filename)
		sub.AttachmentMIMEs = append(sub.AttachmentMIMEs, a.MIME)
		sub.AttachmentBytes += a.Size

		if archiver != nil {
			key, err := archiver.Archive(ctx, sub.ID, a)
			if err != nil {
				audit.Log(audit.Event{
					Event:   audit.EventArchiveFailed,
					Subject: sub.ID,
					Details: map[string]interface{}{"filename": a.Filename, "error": err.Error()},
				})
				continue
			}
			sub.StorageKeys = append(sub.StorageKeys, key)
		}
	}

	if repo != nil {
		if err := repo.Create(ctx, sub); err != nil {
			audit.Log(audit.Event{
				Event:   audit.EventArchiveFailed,
				Subject: sub.ID,
				Details: map[string]interface{}{"error": err.Error()},
			})
		}
	}
}
