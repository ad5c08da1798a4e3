package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/apperror"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type Handler struct {
	Booking       *BookingHandler
	TourRequest   *TourRequestHandler
	CustomBooking *CustomBookingHandler
	Tracking      *TrackingHandler
	Package       *PackageHandler
	Health        *HealthHandler
}

func NewHandler(service *usecase.Service, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Booking:       NewBookingHandler(service.Booking, log),
		TourRequest:   NewTourRequestHandler(service.TourRequest, log),
		CustomBooking: NewCustomBookingHandler(service.CustomBooking, log),
		Tracking:      NewTrackingHandler(service.Tracking, log),
		Package:       NewPackageHandler(service.Package, log),
		Health:        NewHealthHandler(pinger, log),
	}
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		message := "Invalid request body"
		if errors.Is(err, io.EOF) {
			message = "Request body is required"
		}
		utils.ResponseBadRequest(w, message, utils.ErrorDetail{Kind: apperror.KindValidation})
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, "Request body must contain a single JSON object", utils.ErrorDetail{Kind: apperror.KindValidation})
		return false
	}
	return true
}

// respondError logs err at a level matching its kind and writes the error envelope.
func respondError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	kind := apperror.KindOf(err)
	switch kind {
	case apperror.KindInternal:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
	case apperror.KindNotFound, apperror.KindMultipleMatches:
		log.Info(operation+" failed", zap.String("kind", string(kind)), zap.String("operation", operation))
	default:
		log.Warn(operation+" failed",
			zap.String("kind", string(kind)),
			zap.String("operation", operation),
			zap.String("message", err.Error()),
		)
	}
	utils.ResponseError(w, err)
}
