// Package web serves the embedded site: landing page, submission form,
// success page and the admin listing.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// SubmissionLister provides the admin listing data.
type SubmissionLister interface {
	Latest(ctx context.Context, limit int) ([]model.Submission, error)
}

// Handler renders the embedded pages.
type Handler struct {
	submissions SubmissionLister
	logger      *logger.Logger
	templates   *template.Template
	fallbackURL string
}

// NewHandler parses the embedded templates and creates a page handler.
func NewHandler(submissions SubmissionLister, logger *logger.Logger, fallbackURL string) (*Handler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		submissions: submissions,
		logger:      logger,
		templates:   templates,
		fallbackURL: fallbackURL,
	}, nil
}

// StaticHandler serves the embedded assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// Placeholder serves the fallback avatar image so the placeholder URL
// always resolves.
func Placeholder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := staticFS.ReadFile("static/admin/profile.png")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}
}

// Landing renders the landing page.
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.render(w, "landing.html", nil)
}

// Form renders the submission form.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, "form.html", nil)
}

// Auth renders the login/signup page for the backend-auth demo.
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	h.render(w, "auth.html", nil)
}

// Success renders the post-submission confirmation page.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	h.render(w, "success.html", nil)
}

// Admin renders the latest submissions as a table.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissions.Latest(r.Context(), 50)
	if err != nil {
		h.logger.Error("failed to load submissions for admin page", "error", err)
		http.Error(w, "Failed to load submissions", http.StatusInternalServerError)
		return
	}

	h.render(w, "admin.html", map[string]any{
		"Submissions": submissions,
		"FallbackURL": h.fallbackURL,
	})
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
	}
}
