// Package validate holds the local checks run before any backend call.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-web/internal/models"
)

// Messages shown to the user.
const (
	MsgRequired          = "Please fill in all required fields"
	MsgDescriptionLength = "Job description must be at least 50 characters"
	MsgPasswordMismatch  = "Passwords do not match"
	MsgInvalidEmail      = "Please enter a valid email address"
	MsgInvalidStatus     = "Please choose a valid status"
	MsgInvalidRole       = "Please choose a valid role"
)

// MinDescriptionLength is the shortest job description accepted on create.
const MinDescriptionLength = 50

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is a local validation failure. Field names the input it belongs to,
// empty when the message is form-wide.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// AsError extracts a validation error from err.
func AsError(err error) (*Error, bool) {
	var ve *Error
	ok := errors.As(err, &ve)
	return ve, ok
}

func fail(field, msg string) error { return &Error{Field: field, Message: msg} }

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// CheckDescription enforces the minimum job description length in characters.
func CheckDescription(desc string) error {
	if utf8.RuneCountInString(desc) < MinDescriptionLength {
		return fail("description", MsgDescriptionLength)
	}
	return nil
}

// JobInput is the job tracker form on the home page.
type JobInput struct {
	Company     string
	Position    string
	Description string
	Status      string
	Link        string
	Notes       string
}

// NewJob validates a job created from the home tracker.
func NewJob(in JobInput) error {
	if err := EditJob(in); err != nil {
		return err
	}
	return CheckDescription(in.Description)
}

// EditJob validates a job edited from the home tracker. Notes are optional.
func EditJob(in JobInput) error {
	if blank(in.Company, in.Position, in.Description) {
		return fail("", MsgRequired)
	}
	if in.Status != "" && !models.JobStatus(in.Status).Valid() {
		return fail("status", MsgInvalidStatus)
	}
	return nil
}

// AdminJobInput is the admin create/edit job form.
type AdminJobInput struct {
	Company     string
	Position    string
	Description string
	Status      string
	AppliedDate string
	Link        string
	Notes       string
}

// AdminJob validates the admin job form.
func AdminJob(in AdminJobInput) error {
	if blank(in.Company, in.Position, in.Description, in.Status, in.AppliedDate, in.Link) {
		return fail("", MsgRequired)
	}
	if !models.JobStatus(in.Status).Valid() {
		return fail("status", MsgInvalidStatus)
	}
	return nil
}

// UserInput is the admin create/edit user form.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// AdminUser validates the admin user form. The password is only read on create.
func AdminUser(in UserInput, create bool) error {
	if blank(in.Name, in.Email, in.Role) || (create && in.Password == "") {
		return fail("", MsgRequired)
	}
	if !ValidEmail(in.Email) {
		return fail("email", MsgInvalidEmail)
	}
	switch models.Role(in.Role) {
	case models.RoleUser, models.RoleAdmin:
	default:
		return fail("role", MsgInvalidRole)
	}
	return nil
}

// SignupInput is the landing page signup form.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Signup validates the signup form. A confirmation mismatch is reported first.
func Signup(in SignupInput) error {
	if in.Password != in.ConfirmPassword {
		return fail("confirmPassword", MsgPasswordMismatch)
	}
	if blank(in.Name, in.Email) || in.Password == "" {
		return fail("", MsgRequired)
	}
	if !ValidEmail(in.Email) {
		return fail("signupEmail", MsgInvalidEmail)
	}
	return nil
}

// Login validates the login form.
func Login(email, password string) error {
	if blank(email) || password == "" {
		return fail("", MsgRequired)
	}
	return nil
}
