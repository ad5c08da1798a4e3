package adaptor

import (
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TrackingHandler struct {
	service usecase.TrackingService
	log     *zap.Logger
}

func NewTrackingHandler(service usecase.TrackingService, log *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		service: service,
		log:     log.With(zap.String("handler", "tracking")),
	}
}

// Track handles GET /api/track/{code} (public)
func (h *TrackingHandler) Track(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.FindByTrackingCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, h.log, "track", err)
		return
	}

	utils.ResponseSuccess(w, "success", record)
}
