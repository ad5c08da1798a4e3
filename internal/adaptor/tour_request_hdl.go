package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TourRequestHandler struct {
	service usecase.TourRequestService
	log     *zap.Logger
}

func NewTourRequestHandler(service usecase.TourRequestService, log *zap.Logger) *TourRequestHandler {
	return &TourRequestHandler{
		service: service,
		log:     log.With(zap.String("handler", "tour_request")),
	}
}

// CreateTourRequest handles POST /api/tour-requests (public)
func (h *TourRequestHandler) CreateTourRequest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTourRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.service.CreateTourRequest(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, "create tour request", err)
		return
	}

	utils.ResponseCreated(w, "Tour request submitted", created)
}

// ListTourRequests handles GET /api/admin/tour-requests
func (h *TourRequestHandler) ListTourRequests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.TourRequestListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Status: query.Get("status"),
	}

	requests, err := h.service.ListTourRequests(r.Context(), utils.GetActorFromContext(r.Context()), req)
	if err != nil {
		respondError(w, h.log, "list tour requests", err)
		return
	}

	utils.ResponseSuccess(w, "success", requests)
}

// GetTourRequest handles GET /api/admin/tour-requests/{id}
func (h *TourRequestHandler) GetTourRequest(w http.ResponseWriter, r *http.Request) {
	tourRequest, err := h.service.GetTourRequest(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, "get tour request", err)
		return
	}

	utils.ResponseSuccess(w, "success", tourRequest)
}

// UpdateTourRequest handles PUT /api/admin/tour-requests/{id}
func (h *TourRequestHandler) UpdateTourRequest(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTourRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tourRequest, err := h.service.UpdateTourRequest(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id"), &req)
	if err != nil {
		respondError(w, h.log, "update tour request", err)
		return
	}

	utils.ResponseSuccess(w, "Tour request updated", tourRequest)
}

// DeleteTourRequest handles DELETE /api/admin/tour-requests/{id}
func (h *TourRequestHandler) DeleteTourRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTourRequest(r.Context(), utils.GetActorFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "delete tour request", err)
		return
	}

	utils.ResponseSuccess(w, "Tour request deleted", nil)
}
