package usecase

import (
	"context"
	"fmt"

	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperror"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TourRequestService interface {
	CreateTourRequest(ctx context.Context, req *request.CreateTourRequestRequest) (*response.TourRequestCreatedResponse, error)

	GetTourRequest(ctx context.Context, actor *entity.Actor, requestID string) (*response.TourRequestResponse, error)
	ListTourRequests(ctx context.Context, actor *entity.Actor, req *request.TourRequestListRequest) (*response.PaginatedResponse[response.TourRequestResponse], error)
	UpdateTourRequest(ctx context.Context, actor *entity.Actor, requestID string, req *request.UpdateTourRequestRequest) (*response.TourRequestResponse, error)
	DeleteTourRequest(ctx context.Context, actor *entity.Actor, requestID string) error
}

type tourRequestService struct {
	repo        *repository.Repository
	clock       utils.Clock
	ids         *utils.IdentifierGenerator
	policy      *Policy
	cache       cache.TrackingCache
	validator   requestValidator
	attempts    int
	legacyRules bool
	log         *zap.Logger
}

func NewTourRequestService(repo *repository.Repository, deps Dependencies, log *zap.Logger) TourRequestService {
	deps = deps.withDefaults()
	return &tourRequestService{
		repo:        repo,
		clock:       deps.Clock,
		ids:         deps.IDs,
		policy:      deps.Policy,
		cache:       deps.Cache,
		validator:   deps.validator(),
		attempts:    deps.MaxCodeAttempts,
		legacyRules: deps.LegacyTourTransitions,
		log:         log.With(zap.String("service", "tour_request")),
	}
}

func (s *tourRequestService) CreateTourRequest(ctx context.Context, req *request.CreateTourRequestRequest) (*response.TourRequestCreatedResponse, error) {
	in, err := s.validator.tourRequest(req)
	if err != nil {
		s.log.Warn("Create tour request validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	tourRequest := &entity.CustomTourRequest{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		Destination:     req.Destination,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		NumberOfPeople:  in.NumberOfPeople,
		Budget:          in.Budget,
		SpecialRequests: req.SpecialRequests,
		Status:          entity.TourRequestStatusPending,
	}

	insert := func(code string) error {
		tourRequest.TrackingNumber = code
		return s.repo.TourRequest.Create(ctx, tourRequest)
	}

	if _, err := issueCode(ctx, s.log, s.attempts, func() string { return s.ids.Generate(entity.KindCustomTourRequest) }, insert); err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		s.log.Error("Failed to create tour request", zap.Error(err))
		return nil, apperror.Internal("create tour request", err)
	}

	s.log.Info("Tour request created",
		zap.String("tour_request_id", tourRequest.ID.String()),
		zap.String("tracking_number", tourRequest.TrackingNumber),
	)

	resp := response.TourRequestToCreatedResponse(tourRequest)
	return &resp, nil
}

func (s *tourRequestService) GetTourRequest(ctx context.Context, actor *entity.Actor, requestID string) (*response.TourRequestResponse, error) {
	if err := s.policy.Authorize(actor, OpTourRequestRead); err != nil {
		return nil, err
	}

	tourRequest, err := s.findTourRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	resp := response.TourRequestToResponse(tourRequest)
	return &resp, nil
}

func (s *tourRequestService) ListTourRequests(ctx context.Context, actor *entity.Actor, req *request.TourRequestListRequest) (*response.PaginatedResponse[response.TourRequestResponse], error) {
	if err := s.policy.Authorize(actor, OpTourRequestList); err != nil {
		return nil, err
	}

	var status *entity.TourRequestStatus
	if req.Status != "" {
		parsed, err := entity.ParseTourRequestStatus(req.Status)
		if err != nil {
			return nil, apperror.InvalidField("status", "oneof", tourRequestStatusMessage)
		}
		status = &parsed
	}

	page, perPage := paginate(req.Page, req.PerPage)

	total, err := s.repo.TourRequest.Count(ctx, status)
	if err != nil {
		return nil, apperror.Internal("count tour requests", err)
	}

	requests, err := s.repo.TourRequest.List(ctx, status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperror.Internal("list tour requests", err)
	}

	data := make([]response.TourRequestResponse, 0, len(requests))
	for _, t := range requests {
		data = append(data, response.TourRequestToResponse(t))
	}

	return response.NewPaginatedResponse(data, page, perPage, total), nil
}

const tourRequestStatusMessage = "Must be one of: PENDING, IN_PROGRESS, RESPONDED, ACCEPTED, REJECTED"

// tourRequestPatch is the validated form of UpdateTourRequestRequest.
type tourRequestPatch struct {
	status          *entity.TourRequestStatus
	assignedStaffID **uuid.UUID
	responseNotes   **string
	estimatedCost   **float64
}

func parseTourRequestPatch(req *request.UpdateTourRequestRequest) (*tourRequestPatch, error) {
	if req.IsEmpty() {
		return nil, apperror.InvalidField("status", "required_without_all",
			"Provide at least one of status, assigned_staff_id, response_notes, estimated_cost")
	}

	c := newViolations(req)
	patch := &tourRequestPatch{}

	if req.Status != nil {
		status, err := entity.ParseTourRequestStatus(*req.Status)
		if err != nil {
			c.add("status", "oneof", tourRequestStatusMessage)
		} else {
			patch.status = &status
		}
	}

	if req.AssignedStaffID != nil {
		// An empty string unassigns.
		var staff *uuid.UUID
		if raw := *req.AssignedStaffID; raw != "" {
			if id, err := utils.ParseUUID(raw); err != nil {
				c.add("assigned_staff_id", "uuid", "Must be a valid UUID")
			} else {
				staff = &id
			}
		}
		patch.assignedStaffID = &staff
	}

	if req.ResponseNotes != nil {
		notes := trimmedOrNil(*req.ResponseNotes)
		patch.responseNotes = &notes
	}

	if req.EstimatedCost != nil {
		cost := money(c, "estimated_cost", *req.EstimatedCost)
		patch.estimatedCost = &cost
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return patch, nil
}

func (s *tourRequestService) UpdateTourRequest(ctx context.Context, actor *entity.Actor, requestID string, req *request.UpdateTourRequestRequest) (*response.TourRequestResponse, error) {
	if err := s.policy.Authorize(actor, OpTourRequestUpdate); err != nil {
		return nil, err
	}

	patch, err := parseTourRequestPatch(req)
	if err != nil {
		return nil, err
	}

	tourRequest, err := s.findTourRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	previous := tourRequest.Status
	if patch.status != nil {
		if !s.legacyRules && !previous.CanTransitionTo(*patch.status) {
			s.log.Warn("Rejected tour request status transition",
				zap.String("tour_request_id", tourRequest.ID.String()),
				zap.String("from", previous.String()),
				zap.String("to", patch.status.String()),
			)
			return nil, transitionConflict(previous, *patch.status, previous.AllowedTransitions())
		}
		tourRequest.Status = *patch.status
	}
	if patch.assignedStaffID != nil {
		tourRequest.AssignedStaffID = *patch.assignedStaffID
	}
	if patch.responseNotes != nil {
		tourRequest.ResponseNotes = *patch.responseNotes
	}
	if patch.estimatedCost != nil {
		tourRequest.EstimatedCost = *patch.estimatedCost
	}

	now := s.clock.Now()
	tourRequest.ResponseDate = &now
	tourRequest.UpdatedAt = now

	if err := s.repo.TourRequest.Update(ctx, tourRequest, previous); err != nil {
		return nil, storeError(err, "custom tour request", requestID, "update tour request")
	}

	s.log.Info("Tour request updated",
		zap.String("tour_request_id", tourRequest.ID.String()),
		zap.String("status", tourRequest.Status.String()),
	)

	resp := response.TourRequestToResponse(tourRequest)
	return &resp, nil
}

// DeleteTourRequest refuses while any booking still references the request.
// The reference count and the delete share a transaction holding the row lock.
func (s *tourRequestService) DeleteTourRequest(ctx context.Context, actor *entity.Actor, requestID string) error {
	if err := s.policy.Authorize(actor, OpTourRequestDelete); err != nil {
		return err
	}

	id, err := parseID(requestID)
	if err != nil {
		return err
	}

	var trackingNumber string
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		tourRequest, err := tx.TourRequest.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if tourRequest == nil {
			return apperror.NotFound("custom tour request", requestID)
		}

		refs, err := tx.Booking.CountByTourRequestID(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return apperror.Conflict(fmt.Sprintf("custom tour request %s is referenced by %d booking(s) and cannot be deleted",
				tourRequest.TrackingNumber, refs))
		}

		trackingNumber = tourRequest.TrackingNumber
		return tx.TourRequest.Delete(ctx, id)
	})
	if err != nil {
		err = storeError(err, "custom tour request", requestID, "delete tour request")
		if apperror.IsInternal(err) {
			s.log.Error("Failed to delete tour request", zap.Error(err), zap.String("tour_request_id", requestID))
		}
		return err
	}

	invalidate(ctx, s.cache, s.log, trackingNumber)
	s.log.Info("Tour request deleted", zap.String("tour_request_id", requestID))
	return nil
}

func (s *tourRequestService) findTourRequest(ctx context.Context, requestID string) (*entity.CustomTourRequest, error) {
	id, err := parseID(requestID)
	if err != nil {
		return nil, err
	}

	tourRequest, err := s.repo.TourRequest.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find tour request", err)
	}
	if tourRequest == nil {
		return nil, apperror.NotFound("custom tour request", requestID)
	}
	return tourRequest, nil
}
