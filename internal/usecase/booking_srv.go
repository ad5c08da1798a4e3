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

	"go.uber.org/zap"
)

type BookingService interface {
	// Public endpoint; actor is nil for anonymous customers.
	CreateBooking(ctx context.Context, actor *entity.Actor, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error)

	// Admin endpoints, gated by Policy
	GetBooking(ctx context.Context, actor *entity.Actor, bookingID string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, actor *entity.Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBookingStatus(ctx context.Context, actor *entity.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error)
	UpdatePaymentStatus(ctx context.Context, actor *entity.Actor, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, actor *entity.Actor, bookingID string) error
}

type bookingService struct {
	repo      *repository.Repository
	clock     utils.Clock
	ids       *utils.IdentifierGenerator
	policy    *Policy
	cache     cache.TrackingCache
	validator requestValidator
	attempts  int
	legacyID  bool
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, deps Dependencies, log *zap.Logger) BookingService {
	deps = deps.withDefaults()
	return &bookingService{
		repo:      repo,
		clock:     deps.Clock,
		ids:       deps.IDs,
		policy:    deps.Policy,
		cache:     deps.Cache,
		validator: deps.validator(),
		attempts:  deps.MaxCodeAttempts,
		legacyID:  deps.LegacyTrackingID,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor *entity.Actor, req *request.CreateBookingRequest) (*response.BookingCreatedResponse, error) {
	in, err := s.validator.booking(req)
	if err != nil {
		s.log.Warn("Create booking validation failed", zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:              actorUserID(actor),
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		PackageID:           in.PackageID,
		CustomTourRequestID: in.CustomTourRequestID,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		NumberOfPeople:      in.NumberOfPeople,
		Status:              entity.BookingStatusPending,
		PaymentStatus:       entity.PaymentStatusPending,
		SpecialRequests:     req.SpecialRequests,
	}

	if in.PackageID != nil {
		if err := s.pricePackageBooking(ctx, booking, in); err != nil {
			return nil, err
		}
	}

	insert := func(code string) error {
		booking.BookingNumber = code
		if s.legacyID {
			alias := s.ids.Compact(entity.KindBooking)
			booking.TrackingID = &alias
		}

		if in.CustomTourRequestID == nil {
			return s.repo.Booking.Create(ctx, booking)
		}

		// The request row stays locked until the booking is committed so a
		// concurrent delete cannot remove it underneath us.
		return s.repo.WithTx(ctx, func(tx *repository.Repository) error {
			tourRequest, err := tx.TourRequest.FindByIDForUpdate(ctx, *in.CustomTourRequestID)
			if err != nil {
				return err
			}
			if tourRequest == nil {
				return apperror.NotFound("custom tour request", in.CustomTourRequestID.String())
			}
			if tourRequest.Status == entity.TourRequestStatusRejected {
				return apperror.Conflict(fmt.Sprintf("custom tour request %s was rejected and cannot be booked", tourRequest.TrackingNumber))
			}
			if err := priceRequestBooking(booking, in, tourRequest); err != nil {
				return err
			}
			return tx.Booking.Create(ctx, booking)
		})
	}

	if _, err := issueCode(ctx, s.log, s.attempts, func() string { return s.ids.Generate(entity.KindBooking) }, insert); err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		s.log.Error("Failed to create booking", zap.Error(err))
		return nil, apperror.Internal("create booking", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_number", booking.BookingNumber),
	)

	resp := response.BookingToCreatedResponse(booking)
	return &resp, nil
}

// pricePackageBooking checks the package is bookable and fills in the price.
func (s *bookingService) pricePackageBooking(ctx context.Context, booking *entity.Booking, in *bookingInput) error {
	pkg, err := s.repo.Package.FindByID(ctx, *in.PackageID)
	if err != nil {
		return apperror.Internal("find package", err)
	}
	if pkg == nil {
		return apperror.NotFound("package", in.PackageID.String())
	}
	if !pkg.IsActive {
		return apperror.InvalidField("package_id", "active", "Package is not available for booking")
	}
	if pkg.MaxGroupSize != nil && in.NumberOfPeople > *pkg.MaxGroupSize {
		return apperror.InvalidField("number_of_people", "max",
			fmt.Sprintf("Maximum group size for this package is %d", *pkg.MaxGroupSize))
	}

	price := pkg.Price
	if in.PricePerPerson != nil {
		price = *in.PricePerPerson
	}
	booking.PricePerPerson = roundMoney(price)
	booking.TotalAmount = roundMoney(price * float64(in.NumberOfPeople))
	if in.TotalAmount != nil {
		booking.TotalAmount = roundMoney(*in.TotalAmount)
	}
	return checkBookingTotal(booking)
}

// priceRequestBooking prices a booking made from a custom tour request: an
// explicit amount wins, then the staff's estimated cost for the whole group.
func priceRequestBooking(booking *entity.Booking, in *bookingInput, tourRequest *entity.CustomTourRequest) error {
	people := float64(in.NumberOfPeople)

	switch {
	case in.PricePerPerson != nil:
		booking.PricePerPerson = roundMoney(*in.PricePerPerson)
		booking.TotalAmount = roundMoney(*in.PricePerPerson * people)
		if in.TotalAmount != nil {
			booking.TotalAmount = roundMoney(*in.TotalAmount)
		}
	case in.TotalAmount != nil:
		booking.TotalAmount = roundMoney(*in.TotalAmount)
		booking.PricePerPerson = roundMoney(*in.TotalAmount / people)
	case tourRequest.EstimatedCost != nil:
		booking.TotalAmount = roundMoney(*tourRequest.EstimatedCost)
		booking.PricePerPerson = roundMoney(*tourRequest.EstimatedCost / people)
	}
	return checkBookingTotal(booking)
}

func (s *bookingService) GetBooking(ctx context.Context, actor *entity.Actor, bookingID string) (*response.BookingResponse, error) {
	if err := s.policy.Authorize(actor, OpBookingRead); err != nil {
		return nil, err
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor *entity.Actor, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := s.policy.Authorize(actor, OpBookingList); err != nil {
		return nil, err
	}

	var filter repository.BookingFilter
	if req.Status != "" {
		status, err := entity.ParseBookingStatus(req.Status)
		if err != nil {
			return nil, apperror.InvalidField("status", "oneof", "Must be one of: PENDING, CONFIRMED, CANCELLED, COMPLETED")
		}
		filter.Status = &status
	}
	if req.PaymentStatus != "" {
		status, err := entity.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, apperror.InvalidField("payment_status", "oneof", "Must be one of: PENDING, PAID, FAILED, REFUNDED")
		}
		filter.PaymentStatus = &status
	}

	page, perPage := paginate(req.Page, req.PerPage)
	offset := (page - 1) * perPage

	total, err := s.repo.Booking.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Internal("count bookings", err)
	}

	bookings, err := s.repo.Booking.List(ctx, filter, perPage, offset)
	if err != nil {
		return nil, apperror.Internal("list bookings", err)
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(data, page, perPage, total), nil
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, actor *entity.Actor, bookingID string, req *request.UpdateBookingStatusRequest) (*response.BookingResponse, error) {
	if err := s.policy.Authorize(actor, OpBookingUpdateStatus); err != nil {
		return nil, err
	}

	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, apperror.InvalidField("status", "oneof", "Must be one of: PENDING, CONFIRMED, CANCELLED, COMPLETED")
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(target) {
		s.log.Warn("Rejected booking status transition",
			zap.String("booking_id", booking.ID.String()),
			zap.String("from", booking.Status.String()),
			zap.String("to", target.String()),
		)
		return nil, transitionConflict(booking.Status, target, booking.Status.AllowedTransitions())
	}

	now := s.clock.Now()
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, booking.Status, target, now); err != nil {
		return nil, storeError(err, "booking", bookingID, "update booking status")
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", booking.Status.String()),
		zap.String("to", target.String()),
	)

	booking.Status = target
	booking.UpdatedAt = now
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) UpdatePaymentStatus(ctx context.Context, actor *entity.Actor, bookingID string, req *request.UpdatePaymentStatusRequest) (*response.BookingResponse, error) {
	if err := s.policy.Authorize(actor, OpBookingUpdatePayment); err != nil {
		return nil, err
	}

	target, err := entity.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return nil, apperror.InvalidField("payment_status", "oneof", "Must be one of: PENDING, PAID, FAILED, REFUNDED")
	}

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.PaymentStatus.CanTransitionTo(target) {
		return nil, transitionConflict(booking.PaymentStatus, target, booking.PaymentStatus.AllowedTransitions())
	}

	now := s.clock.Now()
	if err := s.repo.Booking.UpdatePaymentStatus(ctx, booking.ID, booking.PaymentStatus, target, now); err != nil {
		return nil, storeError(err, "booking", bookingID, "update payment status")
	}

	s.log.Info("Payment status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("from", booking.PaymentStatus.String()),
		zap.String("to", target.String()),
	)

	booking.PaymentStatus = target
	booking.UpdatedAt = now
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, actor *entity.Actor, bookingID string) error {
	if err := s.policy.Authorize(actor, OpBookingDelete); err != nil {
		return err
	}

	id, err := parseID(bookingID)
	if err != nil {
		return err
	}

	var codes []string
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NotFound("booking", bookingID)
		}
		if !booking.Status.CanBeDeleted() {
			return apperror.Conflict(fmt.Sprintf("booking %s is %s and cannot be deleted", booking.BookingNumber, booking.Status))
		}
		codes = booking.Codes()
		return tx.Booking.Delete(ctx, id)
	})
	if err != nil {
		err = storeError(err, "booking", bookingID, "delete booking")
		if apperror.IsInternal(err) {
			s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", bookingID))
		}
		return err
	}

	invalidate(ctx, s.cache, s.log, codes...)
	s.log.Info("Booking deleted", zap.String("booking_id", bookingID))
	return nil
}

func (s *bookingService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := parseID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("find booking", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("booking", bookingID)
	}
	return booking, nil
}
