package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTourRequest(r chi.Router, h *adaptor.TourRequestHandler, deps routeDeps) {
	r.With(deps.limit).Post("/api/tour-requests", h.CreateTourRequest)

	r.Route("/api/admin/tour-requests", func(r chi.Router) {
		r.Use(deps.auth)

		r.Get("/", h.ListTourRequests)
		r.Get("/{id}", h.GetTourRequest)
		r.Put("/{id}", h.UpdateTourRequest)
		r.Delete("/{id}", h.DeleteTourRequest)
	})
}
