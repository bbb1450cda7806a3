package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saiteja-29/V-Hire/internal/handlers"
	"github.com/saiteja-29/V-Hire/internal/metrics"
)

func New(h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/v1/healthz", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Post("/api/v1/batches", h.CreateBatch)
	r.Get("/api/v1/suggestions", h.Suggestions)
	r.Post("/api/v1/schedules", h.Schedule)
	r.Post("/api/v1/reports", h.SubmitReport)

	r.Post("/api/v1/settlements", h.CreateSettlement)
	r.Get("/api/v1/settlements", h.PendingSettlements)
	r.Get("/api/v1/settlements/{interviewId}", h.CheckSettlement)

	r.Put("/api/v1/profiles", h.UpsertProfile)
	r.Post("/api/v1/run", h.RunCode)
	r.Post("/api/v1/rooms/token", h.RoomToken)

	r.Get("/ws/rooms/{id}", h.RoomWS)

	return r
}
