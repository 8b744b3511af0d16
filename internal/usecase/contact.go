package usecase

import (
	"context"
	"strings"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"
)

type contactUsecase struct {
	dispatcher  domain.Dispatcher
	submissions domain.SubmissionRepository
}

// NewContactUsecase creates the one-shot contact usecase (no draft staging)
func NewContactUsecase(dispatcher domain.Dispatcher, submissions domain.SubmissionRepository) domain.ContactUsecase {
	return &contactUsecase{
		dispatcher:  dispatcher,
		submissions: submissions,
	}
}

// SendContactMessage validates the contact request and dispatches it
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	// Validate input (additional validation beyond binding)
	if strings.TrimSpace(req.Name) == "" {
		return apperror.BadRequest("name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return apperror.BadRequest("email is required")
	}
	if !emailRegex.MatchString(req.Email) {
		return apperror.BadRequest("please enter a valid email address")
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperror.BadRequest("message is required")
	}

	fields := domain.DefaultFormFields()
	fields.Name = req.Name
	fields.Email = req.Email
	fields.Company = req.Company
	fields.Phone = req.Phone
	fields.Subject = req.Subject
	fields.Message = req.Message
	if req.PreferredContact != "" {
		fields.PreferredContact = domain.PreferredContact(req.PreferredContact)
	}
	if req.Urgency != "" {
		fields.Urgency = domain.Urgency(req.Urgency)
	}
	if req.Department != "" {
		fields.Department = domain.Department(req.Department)
	}

	payload := buildSubmissionRequest(fields, nil)
	if err := uc.dispatcher.Dispatch(ctx, payload); err != nil {
		return apperror.BadGateway("We could not send your message right now. Please try again or email us directly.", err)
	}

	archiveSubmission(ctx, uc.submissions, nil, payload, nil)

	return nil
}
