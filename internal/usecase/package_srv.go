package usecase

import (
	"context"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperror"

	"go.uber.org/zap"
)

type PackageService interface {
	ListPackages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error)
	GetPackage(ctx context.Context, packageID string) (*response.PackageResponse, error)
}

type packageService struct {
	packageRepo repository.PackageRepository
	log         *zap.Logger
}

func NewPackageService(packageRepo repository.PackageRepository, log *zap.Logger) PackageService {
	return &packageService{
		packageRepo: packageRepo,
		log:         log.With(zap.String("service", "package")),
	}
}

// ListPackages returns the active catalog only.
func (s *packageService) ListPackages(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PackageResponse], error) {
	page, perPage := paginate(req.Page, req.PerPage)

	total, err := s.packageRepo.CountAll(ctx, true)
	if err != nil {
		return nil, apperror.Internal("count packages", err)
	}

	packages, err := s.packageRepo.FindAll(ctx, (page-1)*perPage, perPage, true)
	if err != nil {
		return nil, apperror.Internal("list packages", err)
	}

	data := make([]response.PackageResponse, 0, len(packages))
	for _, p := range packages {
		data = append(data, response.PackageToResponse(p))
	}

	return response.NewPaginatedResponse(data, page, perPage, total), nil
}

func (s *packageService) GetPackage(ctx context.Context, packageID string) (*response.PackageResponse, error) {
	id, err := parseID(packageID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find package", err)
	}
	if pkg == nil {
		return nil, apperror.NotFound("package", packageID)
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}
