package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomBookingHandler struct {
	service usecase.CustomBookingService
	log     *zap.Logger
}

func NewCustomBookingHandler(service usecase.CustomBookingService, log *zap.Logger) *CustomBookingHandler {
	return &CustomBookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "custom_booking")),
	}
}

// CreateCustomBooking handles POST /api/custom-bookings (optional auth)
func (h *CustomBookingHandler) CreateCustomBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCustomBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.service.CreateCustomBooking(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		respondError(w, h.log, "create custom booking", err)
		return
	}

	utils.ResponseCreated(w, "Custom booking submitted", created)
}

// GetCustomBooking handles GET /api/admin/custom-bookings/{id}
func (h *CustomBookingHandler) GetCustomBooking(w http.ResponseWriter, r *http.Request) {
	customBooking, err := h.service.GetCustomBooking(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, "get custom booking", err)
		return
	}

	utils.ResponseSuccess(w, "success", customBooking)
}

// UpdateCustomBookingStatus handles PUT /api/admin/custom-bookings/{id}/status
func (h *CustomBookingHandler) UpdateCustomBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCustomBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customBooking, err := h.service.UpdateCustomBookingStatus(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, "update custom booking status", err)
		return
	}

	utils.ResponseSuccess(w, "Custom booking status updated", customBooking)
}

// DeleteCustomBooking handles DELETE /api/admin/custom-bookings/{id}
func (h *CustomBookingHandler) DeleteCustomBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomBooking(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "delete custom booking", err)
		return
	}

	utils.ResponseSuccess(w, "Custom booking deleted", nil)
}
