package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/apperror"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Booking       BookingService
	TourRequest   TourRequestService
	CustomBooking CustomBookingService
	Tracking      TrackingService
	Package       PackageService
}

// Dependencies are the collaborators shared by every service. Zero values are
// replaced with production defaults by NewService.
type Dependencies struct {
	Clock                 utils.Clock
	IDs                   *utils.IdentifierGenerator
	Policy                *Policy
	Cache                 cache.TrackingCache
	Location              *time.Location
	MaxCodeAttempts       int
	LegacyTrackingID      bool
	// LegacyTourTransitions lets a tour request move to any status.
	LegacyTourTransitions bool
}

// DependenciesFromConfig builds the dependencies described by config.
func DependenciesFromConfig(config *utils.Config, trackingCache cache.TrackingCache) (Dependencies, error) {
	policy, err := NewPolicy(config.Policy)
	if err != nil {
		return Dependencies{}, err
	}

	loc := config.App.Location()
	clock := utils.SystemClock{Location: loc}

	return Dependencies{
		Clock:                 clock,
		IDs:                   utils.NewIdentifierGenerator(clock),
		Policy:                policy,
		Cache:                 trackingCache,
		Location:              loc,
		MaxCodeAttempts:       config.Identifier.MaxAttempts,
		LegacyTrackingID:      config.Identifier.LegacyTrackingID,
		LegacyTourTransitions: !config.Lifecycle.StrictTourRequestTransitions,
	}, nil
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.Clock == nil {
		d.Clock = utils.SystemClock{Location: d.Location}
	}
	if d.IDs == nil {
		d.IDs = utils.NewIdentifierGenerator(d.Clock)
	}
	if d.Policy == nil {
		d.Policy = DefaultPolicy()
	}
	if d.Cache == nil {
		d.Cache = cache.NewNoopTrackingCache()
	}
	if d.MaxCodeAttempts < 1 {
		d.MaxCodeAttempts = defaultCodeAttempts
	}
	return d
}

func (d Dependencies) validator() requestValidator {
	return requestValidator{clock: d.Clock, loc: d.Location}
}

func NewService(repo *repository.Repository, deps Dependencies, log *zap.Logger) *Service {
	deps = deps.withDefaults()

	return &Service{
		Booking:       NewBookingService(repo, deps, log),
		TourRequest:   NewTourRequestService(repo, deps, log),
		CustomBooking: NewCustomBookingService(repo, deps, log),
		Tracking:      NewTrackingService(repo, deps, log),
		Package:       NewPackageService(repo.Package, log),
	}
}

// parseID validates a path identifier.
func parseID(raw string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, apperror.InvalidField("id", "uuid", "Must be a valid UUID")
	}
	return id, nil
}

// actorUserID returns the actor's subject as a user id when it is one.
func actorUserID(actor *entity.Actor) *uuid.UUID {
	if actor == nil {
		return nil
	}
	id, err := uuid.Parse(actor.SubjectID)
	if err != nil {
		return nil
	}
	return &id
}

// storeError converts repository sentinels into service errors. resource and
// id name the record for NOT_FOUND messages.
func storeError(err error, resource, id, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(resource, id)
	case errors.Is(err, repository.ErrStaleState):
		return apperror.Wrap(apperror.KindConflict, fmt.Sprintf("%s %s was modified concurrently, reload and retry", resource, id), err)
	default:
		return apperror.Internal(op, err)
	}
}

func transitionConflict[S ~string](from, to S, allowed []S) error {
	names := make([]string, len(allowed))
	for i, s := range allowed {
		names[i] = string(s)
	}
	allowedText := "none, status is terminal"
	if len(names) > 0 {
		allowedText = strings.Join(names, ", ")
	}
	return apperror.Conflict(fmt.Sprintf("invalid status transition from %s to %s (allowed: %s)", from, to, allowedText))
}

// invalidate drops cached code resolutions; failures only cost a cache miss later.
func invalidate(ctx context.Context, c cache.TrackingCache, log *zap.Logger, codes ...string) {
	if err := c.Invalidate(ctx, codes...); err != nil {
		log.Warn("Failed to invalidate tracking cache", zap.Strings("codes", codes), zap.Error(err))
	}
}

func paginate(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
