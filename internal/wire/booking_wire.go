package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, h *adaptor.BookingHandler, deps routeDeps) {
	// ==================== PUBLIC ROUTES ====================
	// Anonymous customers may book; a valid token links the booking to its user.
	r.With(deps.limit, deps.optional).Post("/api/bookings", h.CreateBooking)

	// ==================== ADMIN ROUTES ====================
	// Roles are checked per operation by the service policy.
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(deps.auth)

		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Put("/{id}/status", h.UpdateBookingStatus)
		r.Put("/{id}/payment-status", h.UpdatePaymentStatus)
		r.Delete("/{id}", h.DeleteBooking)
	})
}
