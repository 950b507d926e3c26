package service

import (
	"fmt"

	"github.com/formdesk/formdesk-server/internal/validation"
)

// ValidationError carries the collected field violations. No side
// effect has happened when it is returned.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(e.Fields))
}

// UploadError wraps an object storage failure. The database was not
// touched when it is returned.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
