package usecase

import (
	"context"

	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperror"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type CustomBookingService interface {
	CreateCustomBooking(ctx context.Context, actor *entity.Actor, req *request.CreateCustomBookingRequest) (*response.CustomBookingCreatedResponse, error)
	GetCustomBooking(ctx context.Context, actor *entity.Actor, customBookingID string) (*response.CustomBookingResponse, error)
	UpdateCustomBookingStatus(ctx context.Context, actor *entity.Actor, customBookingID string, req *request.UpdateCustomBookingStatusRequest) (*response.CustomBookingResponse, error)
	DeleteCustomBooking(ctx context.Context, actor *entity.Actor, customBookingID string) error
}

type customBookingService struct {
	repo      *repository.Repository
	clock     utils.Clock
	ids       *utils.IdentifierGenerator
	policy    *Policy
	cache     cache.TrackingCache
	validator requestValidator
	attempts  int
	log       *zap.Logger
}

func NewCustomBookingService(repo *repository.Repository, deps Dependencies, log *zap.Logger) CustomBookingService {
	deps = deps.withDefaults()
	return &customBookingService{
		repo:      repo,
		clock:     deps.Clock,
		ids:       deps.IDs,
		policy:    deps.Policy,
		cache:     deps.Cache,
		validator: deps.validator(),
		attempts:  deps.MaxCodeAttempts,
		log:       log.With(zap.String("service", "custom_booking")),
	}
}

func (s *customBookingService) CreateCustomBooking(ctx context.Context, actor *entity.Actor, req *request.CreateCustomBookingRequest) (*response.CustomBookingCreatedResponse, error) {
	in, err := s.validator.customBooking(req)
	if err != nil {
		s.log.Warn("Create custom booking validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	customBooking := &entity.CustomBooking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:          actorUserID(actor),
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Destination:     req.Destination,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		NumberOfPeople:  in.NumberOfPeople,
		Budget:          in.Budget,
		RequireGuide:    req.RequireGuide,
		ProposalType:    req.ProposalType,
		SpecialRequests: req.SpecialRequests,
		Status:          entity.CustomBookingStatusPending,
	}

	insert := func(code string) error {
		customBooking.CustomBookingID = code
		return s.repo.CustomBooking.Create(ctx, customBooking)
	}

	if _, err := issueCode(ctx, s.log, s.attempts, func() string { return s.ids.Generate(entity.KindCustomBooking) }, insert); err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		s.log.Error("Failed to create custom booking", zap.Error(err))
		return nil, apperror.Internal("create custom booking", err)
	}

	s.log.Info("Custom booking created",
		zap.String("id", customBooking.ID.String()),
		zap.String("custom_booking_id", customBooking.CustomBookingID),
	)

	resp := response.CustomBookingToCreatedResponse(customBooking)
	return &resp, nil
}

func (s *customBookingService) GetCustomBooking(ctx context.Context, actor *entity.Actor, customBookingID string) (*response.CustomBookingResponse, error) {
	if err := s.policy.Authorize(actor, OpCustomBookingRead); err != nil {
		return nil, err
	}

	customBooking, err := s.findCustomBooking(ctx, customBookingID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomBookingToResponse(customBooking)
	return &resp, nil
}

func (s *customBookingService) UpdateCustomBookingStatus(ctx context.Context, actor *entity.Actor, customBookingID string, req *request.UpdateCustomBookingStatusRequest) (*response.CustomBookingResponse, error) {
	if err := s.policy.Authorize(actor, OpCustomBookingUpdate); err != nil {
		return nil, err
	}

	target, err := entity.ParseCustomBookingStatus(req.Status)
	if err != nil {
		return nil, apperror.InvalidField("status", "oneof", "Must be one of: PENDING, CONFIRMED, CANCELLED")
	}

	customBooking, err := s.findCustomBooking(ctx, customBookingID)
	if err != nil {
		return nil, err
	}

	if !customBooking.Status.CanTransitionTo(target) {
		return nil, transitionConflict(customBooking.Status, target, customBooking.Status.AllowedTransitions())
	}

	now := s.clock.Now()
	if err := s.repo.CustomBooking.UpdateStatus(ctx, customBooking.ID, customBooking.Status, target, now); err != nil {
		return nil, storeError(err, "custom booking", customBookingID, "update custom booking status")
	}

	s.log.Info("Custom booking status updated",
		zap.String("id", customBooking.ID.String()),
		zap.String("from", customBooking.Status.String()),
		zap.String("to", target.String()),
	)

	customBooking.Status = target
	customBooking.UpdatedAt = now
	resp := response.CustomBookingToResponse(customBooking)
	return &resp, nil
}

func (s *customBookingService) DeleteCustomBooking(ctx context.Context, actor *entity.Actor, customBookingID string) error {
	if err := s.policy.Authorize(actor, OpCustomBookingDelete); err != nil {
		return err
	}

	customBooking, err := s.findCustomBooking(ctx, customBookingID)
	if err != nil {
		return err
	}

	if err := s.repo.CustomBooking.Delete(ctx, customBooking.ID); err != nil {
		return storeError(err, "custom booking", customBookingID, "delete custom booking")
	}

	invalidate(ctx, s.cache, s.log, customBooking.CustomBookingID)
	s.log.Info("Custom booking deleted", zap.String("id", customBookingID))
	return nil
}

func (s *customBookingService) findCustomBooking(ctx context.Context, customBookingID string) (*entity.CustomBooking, error) {
	id, err := parseID(customBookingID)
	if err != nil {
		return nil, err
	}

	customBooking, err := s.repo.CustomBooking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find custom booking", err)
	}
	if customBooking == nil {
		return nil, apperror.NotFound("custom booking", customBookingID)
	}
	return customBooking, nil
}
