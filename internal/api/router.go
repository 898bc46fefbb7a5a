package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acourt/roster/internal/metrics"
	"github.com/acourt/roster/internal/org"
	"github.com/acourt/roster/internal/ratelimit"
)

// RouterDeps holds all dependencies for the API router.
type RouterDeps struct {
	Users         *org.UserService
	Companies     *org.CompanyService
	Teams         *org.TeamService
	Projects      *org.ProjectService
	Announcements *org.AnnouncementService
	Metrics       *metrics.Metrics
	LoginLimiter  *ratelimit.Limiter
	CORSOrigins   []string
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	m := deps.Metrics

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(secureHeaders)
	r.Use(corsMiddleware(deps.CORSOrigins))
	r.Use(slogRequestLogger)
	r.Use(metricsMiddleware(m))

	// Handlers.
	users := newUsersHandler(deps.Users, m)
	companies := newCompanyHandler(deps.Companies)
	teams := newTeamsHandler(deps.Teams, m)
	projects := newProjectsHandler(deps.Projects, m)
	announcements := newAnnouncementsHandler(deps.Announcements, m)

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Observability.
	r.Get("/metrics", promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}).ServeHTTP)
	r.Get("/metrics/summary", m.Handler())

	// Users.
	login := chi.Chain()
	if deps.LoginLimiter != nil {
		login = chi.Chain(ratelimit.LoginMiddleware(deps.LoginLimiter, func() {
			m.IncRateLimitRejection("login")
		}))
	}
	r.With(login...).Post("/users/login", users.Login)
	r.Patch("/users/{userId}", users.UpdateUser)
	r.Patch("/users/{userId}/reinstate", users.ReinstateUser)
	r.Delete("/users/{userId}", users.DeleteUser)
	r.Delete("/users/{userId}/permanent", users.DeleteUserPermanent)

	// Company-scoped routes.
	r.Route("/company/{companyId}", func(cr chi.Router) {
		cr.Get("/users", companies.GetUsers)
		cr.Post("/users", users.AddUser)

		cr.Get("/announcements", companies.GetAnnouncements)
		cr.Post("/announcements", announcements.CreateAnnouncement)

		cr.Get("/teams", companies.GetTeams)
		cr.Post("/teams", teams.CreateTeam)
		cr.Patch("/teams/{teamId}", teams.UpdateTeam)
		cr.Delete("/teams/{teamId}", teams.DeleteTeam)
		cr.Get("/teams/{teamId}/projects", companies.GetProjects)
	})

	// Announcements (company resolved from the record itself).
	r.Put("/announcements/{announcementId}", announcements.UpdateAnnouncement)
	r.Delete("/announcements/{announcementId}", announcements.DeleteAnnouncement)

	// Projects.
	r.Post("/projects", projects.CreateProject)
	r.Patch("/projects/{projectId}", projects.UpdateProject)
	r.Delete("/projects/{projectId}", projects.DeleteProject)

	return r
}

// slogRequestLogger is a simple structured logging middleware using slog.
func slogRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", ww.BytesWritten(),
		)
	})
}
