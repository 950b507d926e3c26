// Package validation holds the field rules shared by the form API and
// the rendered form page. Rules are evaluated independently and all
// violations are collected, never short-circuited.
package validation

import (
	"regexp"
	"strings"

	"github.com/formdesk/formdesk-server/internal/model"
)

// MaxAvatarSize is the upload cap for avatar images.
const MaxAvatarSize = 2 << 20

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldError tags a human-readable message with the offending field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Options selects which optional checks are enforced.
type Options struct {
	// Strict enables the avatar size cap. The relaxed mode keeps the
	// type check only.
	Strict bool
}

// Submission validates raw form input and returns every violation.
// An empty result means the input is acceptable.
func Submission(input model.SubmissionInput, opts Options) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(input.Name)
	switch {
	case name == "":
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	case len([]rune(name)) < 2:
		errs = append(errs, FieldError{Field: "name", Message: "Name must have at least 2 characters"})
	}

	email := strings.TrimSpace(input.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Message: "Email format looks invalid"})
	}

	if file := input.Avatar; HasFile(file) {
		if !strings.HasPrefix(file.ContentType, "image/") {
			errs = append(errs, FieldError{Field: "avatar", Message: "Only image files are allowed"})
		}
		if opts.Strict && file.Size > MaxAvatarSize {
			errs = append(errs, FieldError{Field: "avatar", Message: "Max file size is 2MB"})
		}
	}

	return errs
}

// HasFile reports whether a form file was actually provided. A nil or
// zero-byte file counts as absent, so empty form-file fields never
// trip the avatar rules.
func HasFile(file *model.FileInput) bool {
	return file != nil && file.Size > 0
}
