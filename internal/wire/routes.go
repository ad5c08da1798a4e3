package wire

import (
	"net/http"

	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

type middlewareFunc = func(http.Handler) http.Handler

// routeDeps are the middlewares shared by the resource routes.
type routeDeps struct {
	auth     middlewareFunc
	optional middlewareFunc
	limit    middlewareFunc
}

func wirePackage(r chi.Router, h *adaptor.PackageHandler) {
	r.Get("/api/packages", h.ListPackages)
	r.Get("/api/packages/{id}", h.GetPackage)
}

func wireTracking(r chi.Router, h *adaptor.TrackingHandler) {
	r.Get("/api/track/{code}", h.Track)
}
