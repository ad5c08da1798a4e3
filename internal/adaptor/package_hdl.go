package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PackageHandler struct {
	service usecase.PackageService
	log     *zap.Logger
}

func NewPackageHandler(service usecase.PackageService, log *zap.Logger) *PackageHandler {
	return &PackageHandler{
		service: service,
		log:     log.With(zap.String("handler", "package")),
	}
}

// ListPackages handles GET /api/packages (public)
func (h *PackageHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	packages, err := h.service.ListPackages(r.Context(), req)
	if err != nil {
		respondError(w, h.log, "list packages", err)
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}

// GetPackage handles GET /api/packages/{id} (public)
func (h *PackageHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.service.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.log, "get package", err)
		return
	}

	utils.ResponseSuccess(w, "success", pkg)
}
