package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/formdesk/formdesk-server/internal/service"
	"github.com/formdesk/formdesk-server/internal/validation"
)

// writeSubmissionError maps a submission service failure onto the
// envelope and status the form API promises: field errors and upload
// failures are client errors, anything else is a server error with a
// generic message.
func writeSubmissionError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, Envelope{OK: false, Errors: validationErr.Fields})
		return
	}

	var uploadErr *service.UploadError
	if errors.As(err, &uploadErr) {
		writeJSON(w, http.StatusBadRequest, Envelope{
			OK:     false,
			Errors: []validation.FieldError{{Field: "avatar", Message: fmt.Sprintf("Upload failed: %v", uploadErr.Err)}},
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, Envelope{
		OK:     false,
		Errors: []validation.FieldError{{Message: "internal server error"}},
	})
}
