package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/meeting-scheduler/internal/scheduling"
)

// SessionProvider hands out the acting user's scheduling session.
type SessionProvider interface {
	ForUser(ctx context.Context, userID string) (*scheduling.Session, error)
}

type RouterConfig struct {
	Sessions      SessionProvider
	Clock         scheduling.Clock
	Dependencies  map[string]Pinger
	DefaultUserID string
	Env           string
	Version       string
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Clock == nil {
		cfg.Clock = scheduling.RealClock{}
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	health := NewHealthHandler(cfg.Dependencies, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	h := &handlers{sessions: cfg.Sessions, clock: cfg.Clock}

	r.Group(func(r chi.Router) {
		r.Use(UserMiddleware(cfg.DefaultUserID))

		r.Get("/availability", h.listAvailability)
		r.Post("/availability", h.addAvailability)
		r.Patch("/availability/{id}", h.modifyAvailability)
		r.Delete("/availability/{id}", h.deleteAvailability)

		r.Post("/selections", h.checkSelection)

		r.Get("/meetings", h.listMeetings)
		r.Post("/meetings", h.requestMeeting)
		r.Get("/meetings/requests", h.pendingRequests)
		r.Get("/meetings/upcoming", h.upcomingMeetings)
		r.Get("/meetings/{id}", h.getMeeting)
		r.Post("/meetings/{id}/accept", h.acceptMeeting)
		r.Post("/meetings/{id}/decline", h.declineMeeting)

		r.Get("/calendar", h.calendar)
		r.Get("/calendar.ics", h.calendarICS)
	})

	return r
}
