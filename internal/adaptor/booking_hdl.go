package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (optional auth)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor := utils.GetActorFromContext(r.Context())
	booking, err := h.service.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		respondError(w, h.log, "create booking", err)
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// ==================== ADMIN METHODS ====================

// ListBookings handles GET /api/admin/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.BookingListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status:        query.Get("status"),
		PaymentStatus: query.Get("payment_status"),
	}

	bookings, err := h.service.ListBookings(r.Context(), utils.GetActorFromContext(r.Context()), req)
	if err != nil {
		respondError(w, h.log, "list bookings", err)
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBooking handles GET /api/admin/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, "get booking", err)
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBookingStatus handles PUT /api/admin/bookings/{id}/status
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdateBookingStatus(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, "update booking status", err)
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}

// UpdatePaymentStatus handles PUT /api/admin/bookings/{id}/payment-status
func (h *BookingHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePaymentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.UpdatePaymentStatus(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, "update payment status", err)
		return
	}

	utils.ResponseSuccess(w, "Payment status updated", booking)
}

// DeleteBooking handles DELETE /api/admin/bookings/{id}
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteBooking(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "delete booking", err)
		return
	}

	utils.ResponseSuccess(w, "Booking deleted", nil)
}
