package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
	"github.com/formdesk/formdesk-server/internal/validation"
)

// maxFormMemory bounds the in-memory part of multipart parsing; the
// avatar cap itself is enforced by validation.
const maxFormMemory = 12 << 20

// SubmissionService drives the submission flow.
type SubmissionService interface {
	Create(ctx context.Context, input model.SubmissionInput) (model.Submission, error)
	Latest(ctx context.Context, limit int) ([]model.Submission, error)
	Avatar(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
}

// Form serves the submission endpoints.
type Form struct {
	service SubmissionService
	logger  *logger.Logger
}

// NewForm creates a form handler.
func NewForm(service SubmissionService, logger *logger.Logger) *Form {
	return &Form{service: service, logger: logger}
}

// Create handles POST /api/form. The multipart payload is parsed and
// validated server-side regardless of what the client already checked.
func (h *Form) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{
			OK:     false,
			Errors: []validation.FieldError{{Message: "invalid multipart payload"}},
		})
		return
	}

	input := model.SubmissionInput{
		Name:  r.FormValue("name"),
		Email: r.FormValue("email"),
	}

	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			writeJSON(w, http.StatusBadRequest, Envelope{
				OK:     false,
				Errors: []validation.FieldError{{Field: "avatar", Message: "failed to read file"}},
			})
			return
		}
		input.Avatar = &model.FileInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        data,
		}
	case errors.Is(err, http.ErrMissingFile):
		// optional field
	default:
		writeJSON(w, http.StatusBadRequest, Envelope{
			OK:     false,
			Errors: []validation.FieldError{{Field: "avatar", Message: "failed to read file"}},
		})
		return
	}

	submission, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("failed to create submission", "error", err)
		writeSubmissionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Envelope{
		OK:      true,
		Data:    submission,
		Message: fmt.Sprintf("Thanks, %s! We'll contact you at %s.", submission.Name, submission.Email),
	})
}

// Delete handles DELETE /api/form. Deleting submissions is not
// supported.
func (h *Form) Delete(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, Envelope{OK: false, Message: "Not implemented"})
}

// Avatar handles GET /api/admin/submissions/{id}/avatar: streams the
// stored avatar bytes.
func (h *Form) Avatar(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, Envelope{OK: false, Message: "Not found"})
		return
	}

	reader, contentType, err := h.service.Avatar(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, Envelope{OK: false, Message: "Not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch avatar", "error", err, "submission_id", id)
		writeJSON(w, http.StatusInternalServerError, Envelope{
			OK:     false,
			Errors: []validation.FieldError{{Message: "internal server error"}},
		})
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed to stream avatar", "error", err, "submission_id", id)
	}
}

// List handles GET /api/admin/submissions: the latest 50 entries,
// newest first.
func (h *Form) List(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.service.Latest(r.Context(), 50)
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		writeJSON(w, http.StatusInternalServerError, Envelope{
			OK:     false,
			Errors: []validation.FieldError{{Message: "internal server error"}},
		})
		return
	}

	writeJSON(w, http.StatusOK, Envelope{OK: true, Data: submissions})
}
