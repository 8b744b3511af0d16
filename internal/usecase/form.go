package usecase

import (
	"regexp"
	"strings"

	"hushh-site-backend/internal/domain"
	"hushh-site-backend/pkg/apperror"
)

// Basic local@domain shape; full RFC validation is the mail server's job
var emailRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateFields checks the mandatory-field and email-shape rules.
// Pure: it never touches draft state. Returns true iff the error map is empty.
func ValidateFields(f domain.FormFields) (domain.ValidationErrors, bool) {
	errs := domain.ValidationErrors{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailRegex.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if strings.TrimSpace(f.Message) == "" {
		errs["message"] = "Message is required"
	}

	return errs, len(errs) == 0
}

// applyField writes one named field. Enum fields only accept their allowed
// values; unknown names are rejected so typos never vanish silently.
func applyField(f *domain.FormFields, field, value string) error {
	switch field {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "company":
		f.Company = value
	case "phone":
		f.Phone = value
	case "subject":
		f.Subject = value
	case "message":
		f.Message = value
	case "preferred_contact":
		if !domain.ValidPreferredContact(value) {
			return apperror.BadRequest("invalid preferred_contact value: " + value)
		}
		f.PreferredContact = domain.PreferredContact(value)
	case "urgency":
		if !domain.ValidUrgency(value) {
			return apperror.BadRequest("invalid urgency value: " + value)
		}
		f.Urgency = domain.Urgency(value)
	case "department":
		if !domain.ValidDepartment(value) {
			return apperror.BadRequest("invalid department value: " + value)
		}
		f.Department = domain.Department(value)
	default:
		return apperror.BadRequest("unknown field: " + field)
	}
	return nil
}
