package domain

import "context"

// PreferredContact is the channel the visitor wants to be reached on
type PreferredContact string

const (
	PreferredContactEmail    PreferredContact = "email"
	PreferredContactPhone    PreferredContact = "phone"
	PreferredContactWhatsapp PreferredContact = "whatsapp"
	PreferredContactVideo    PreferredContact = "video"
)

// Urgency of the inquiry
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// Department the inquiry should be routed to
type Department string

const (
	DepartmentGeneral     Department = "general"
	DepartmentSales       Department = "sales"
	DepartmentSupport     Department = "support"
	DepartmentPartnership Department = "partnership"
	DepartmentMedia       Department = "media"
	DepartmentCareers     Department = "careers"
)

// FormFields holds the user-entered contact form values.
// Name, Email and Message are mandatory; Email must look like local@domain.
type FormFields struct {
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Company          string           `json:"company"`
	Phone            string           `json:"phone"`
	Subject          string           `json:"subject"`
	Message          string           `json:"message"`
	PreferredContact PreferredContact `json:"preferred_contact"`
	Urgency          Urgency          `json:"urgency"`
	Department       Department       `json:"department"`
}

// DefaultFormFields returns the initial state of a fresh contact form
func DefaultFormFields() FormFields {
	return FormFields{
		PreferredContact: PreferredContactEmail,
		Urgency:          UrgencyNormal,
		Department:       DepartmentGeneral,
	}
}

// ValidationErrors maps a field name to its current error message.
// A field is present only while it fails validation; editing the field
// clears its entry until the next submit attempt.
type ValidationErrors map[string]string

// ValidPreferredContact reports whether v is an accepted preferred_contact value
func ValidPreferredContact(v string) bool {
	switch PreferredContact(v) {
	case PreferredContactEmail, PreferredContactPhone, PreferredContactWhatsapp, PreferredContactVideo:
		return true
	}
	return false
}

// ValidUrgency reports whether v is an accepted urgency value
func ValidUrgency(v string) bool {
	switch Urgency(v) {
	case UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyUrgent:
		return true
	}
	return false
}

// ValidDepartment reports whether v is an accepted department value
func ValidDepartment(v string) bool {
	switch Department(v) {
	case DepartmentGeneral, DepartmentSales, DepartmentSupport,
		DepartmentPartnership, DepartmentMedia, DepartmentCareers:
		return true
	}
	return false
}

// SubmissionRequest is the ephemeral JSON payload posted to the remote
// email-dispatch service. Message carries the visitor's free text with a
// routing-context block appended. Attachment bytes are NOT part of the
// payload; only their count travels (the dispatch service sends plain email).
type SubmissionRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Company          string `json:"company,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Subject          string `json:"subject,omitempty"`
	Message          string `json:"message"`
	PreferredContact string `json:"preferred_contact"`
	Urgency          string `json:"urgency"`
	Department       string `json:"department"`
	HasAttachments   bool   `json:"has_attachments"`
	AttachmentCount  int    `json:"attachment_count"`
}

// ContactRequest is the one-shot contact form body (no draft staging)
type ContactRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Company          string `json:"company"`
	Phone            string `json:"phone"`
	Subject          string `json:"subject"`
	Message          string `json:"message" binding:"required"`
	PreferredContact string `json:"preferred_contact" binding:"omitempty,oneof=email phone whatsapp video"`
	Urgency          string `json:"urgency" binding:"omitempty,oneof=low normal high urgent"`
	Department       string `json:"department" binding:"omitempty,oneof=general sales support partnership media careers"`
}

// ContactUsecase defines the one-shot contact form operation
type ContactUsecase interface {
	// SendContactMessage validates and dispatches a contact form message
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}

// Dispatcher performs the single outbound POST to the email-dispatch service
type Dispatcher interface {
	Dispatch(ctx context.Context, payload any) error
}
