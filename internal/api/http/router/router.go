// Package router assembles the HTTP route table.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/formdesk/formdesk-server/internal/api/http/handler"
	"github.com/formdesk/formdesk-server/internal/api/http/middleware"
	"github.com/formdesk/formdesk-server/internal/logger"
	"github.com/formdesk/formdesk-server/internal/web"
)

// New builds the router serving the API and the embedded pages.
func New(
	formH *handler.Form,
	echoH *handler.Echo,
	sessionH *handler.Session,
	authH *handler.Auth,
	webH *web.Handler,
	authenticate *middleware.Authenticate,
	logger *logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.NewLogging(logger).Handle)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/form", formH.Create)
		r.Delete("/form", formH.Delete)

		r.Post("/echo", echoH.Post)
		r.Get("/echo", echoH.Get)

		r.Post("/login", sessionH.Login)
		r.Post("/logout", sessionH.Logout)
		r.Get("/profile", sessionH.Profile)

		r.Post("/auth/signup", authH.Signup)
		r.Post("/auth/login", authH.Login)
		r.With(authenticate.Handle).Post("/profile/ensure", authH.EnsureProfile)

		r.Get("/admin/submissions", formH.List)
		r.Get("/admin/submissions/{id}/avatar", formH.Avatar)
	})

	r.Get("/", webH.Landing)
	r.Get("/form", webH.Form)
	r.Get("/auth", webH.Auth)
	r.Get("/success", webH.Success)
	r.Get("/admin", webH.Admin)
	r.Get("/admin/profile.png", web.Placeholder())
	r.Handle("/static/*", web.StaticHandler())

	return r
}
