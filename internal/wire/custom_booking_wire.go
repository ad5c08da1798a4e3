package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomBooking(r chi.Router, h *adaptor.CustomBookingHandler, deps routeDeps) {
	r.With(deps.limit, deps.optional).Post("/api/custom-bookings", h.CreateCustomBooking)

	r.Route("/api/admin/custom-bookings", func(r chi.Router) {
		r.Use(deps.auth)

		r.Get("/{id}", h.GetCustomBooking)
		r.Put("/{id}/status", h.UpdateCustomBookingStatus)
		r.Delete("/{id}", h.DeleteCustomBooking)
	})
}
