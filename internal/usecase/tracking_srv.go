package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Shorter fragments match too much of the table to be useful.
	minPartialCodeLength = 4
	maxTrackingMatches   = 10
)

type TrackingService interface {
	// FindByTrackingCode resolves an exact code first, then falls back to a
	// partial match. Several partial matches yield MULTIPLE_MATCHES.
	FindByTrackingCode(ctx context.Context, code string) (*response.TrackingResponse, error)
}

type trackingService struct {
	repo  *repository.Repository
	cache cache.TrackingCache
	log   *zap.Logger
}

func NewTrackingService(repo *repository.Repository, deps Dependencies, log *zap.Logger) TrackingService {
	deps = deps.withDefaults()
	return &trackingService{
		repo:  repo,
		cache: deps.Cache,
		log:   log.With(zap.String("service", "tracking")),
	}
}

// trackedRecord is a record of any kind plus its response form.
type trackedRecord struct {
	kind  entity.RecordKind
	id    uuid.UUID
	codes []string
	resp  *response.TrackingResponse
}

func (r trackedRecord) match() response.TrackingMatch {
	return response.TrackingMatch{Kind: r.kind, Code: r.resp.Code, Status: r.resp.Status}
}

func (s *trackingService) FindByTrackingCode(ctx context.Context, code string) (*response.TrackingResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apperror.InvalidField("code", "required", "This field is required")
	}

	if rec, err := s.fromCache(ctx, code); err != nil {
		return nil, err
	} else if rec != nil {
		return rec.resp, nil
	}

	kinds := kindsForCode(code)

	for _, kind := range kinds {
		rec, err := s.findExact(ctx, kind, code)
		if err != nil {
			return nil, apperror.Internal("find by tracking code", err)
		}
		if rec != nil {
			if err := s.cache.Set(ctx, code, cache.Entry{Kind: rec.kind, ID: rec.id}); err != nil {
				s.log.Warn("Failed to cache tracking code", zap.String("code", code), zap.Error(err))
			}
			return rec.resp, nil
		}
	}

	if len(code) < minPartialCodeLength {
		return nil, apperror.NotFound("tracking code", code)
	}

	var matches []trackedRecord
	for _, kind := range kinds {
		found, err := s.search(ctx, kind, code)
		if err != nil {
			return nil, apperror.Internal("search tracking codes", err)
		}
		matches = append(matches, found...)
	}

	switch len(matches) {
	case 0:
		return nil, apperror.NotFound("tracking code", code)
	case 1:
		return matches[0].resp, nil
	}

	summaries := make([]response.TrackingMatch, 0, maxTrackingMatches)
	for _, m := range matches {
		if len(summaries) == maxTrackingMatches {
			break
		}
		summaries = append(summaries, m.match())
	}

	count := fmt.Sprintf("%d", len(matches))
	if len(matches) > maxTrackingMatches {
		count = fmt.Sprintf("more than %d", maxTrackingMatches)
	}

	s.log.Info("Ambiguous tracking code", zap.String("code", code), zap.Int("matches", len(matches)))
	return nil, apperror.MultipleMatches(
		fmt.Sprintf("%s records match tracking code %s, please enter the full code", count, code),
		summaries,
	)
}

// kindsForCode narrows the lookup by prefix. Codes without a known prefix are
// searched across every kind.
func kindsForCode(code string) []entity.RecordKind {
	switch {
	case strings.HasPrefix(code, entity.KindCustomTourRequest.Prefix()):
		return []entity.RecordKind{entity.KindCustomTourRequest}
	case strings.HasPrefix(code, entity.KindCustomBooking.Prefix()):
		return []entity.RecordKind{entity.KindCustomBooking}
	case strings.HasPrefix(code, entity.KindBooking.Prefix()):
		return []entity.RecordKind{entity.KindBooking}
	default:
		return []entity.RecordKind{entity.KindBooking, entity.KindCustomTourRequest, entity.KindCustomBooking}
	}
}

// fromCache returns the cached record for code, or nil on a miss. Entries
// whose record is gone or no longer carries the code are dropped.
func (s *trackingService) fromCache(ctx context.Context, code string) (*trackedRecord, error) {
	entry, err := s.cache.Get(ctx, code)
	if err != nil {
		s.log.Warn("Tracking cache unavailable", zap.String("code", code), zap.Error(err))
		return nil, nil
	}
	if entry == nil {
		return nil, nil
	}

	rec, err := s.findByID(ctx, entry.Kind, entry.ID)
	if err != nil {
		return nil, apperror.Internal("find by tracking code", err)
	}
	if rec == nil || !slices.Contains(rec.codes, code) {
		invalidate(ctx, s.cache, s.log, code)
		return nil, nil
	}
	return rec, nil
}

func (s *trackingService) findExact(ctx context.Context, kind entity.RecordKind, code string) (*trackedRecord, error) {
	switch kind {
	case entity.KindBooking:
		b, err := s.repo.Booking.FindByCode(ctx, code)
		if err != nil || b == nil {
			return nil, err
		}
		return bookingRecord(b), nil
	case entity.KindCustomTourRequest:
		t, err := s.repo.TourRequest.FindByCode(ctx, code)
		if err != nil || t == nil {
			return nil, err
		}
		return tourRequestRecord(t), nil
	case entity.KindCustomBooking:
		cb, err := s.repo.CustomBooking.FindByCode(ctx, code)
		if err != nil || cb == nil {
			return nil, err
		}
		return customBookingRecord(cb), nil
	}
	return nil, nil
}

func (s *trackingService) findByID(ctx context.Context, kind entity.RecordKind, id uuid.UUID) (*trackedRecord, error) {
	switch kind {
	case entity.KindBooking:
		b, err := s.repo.Booking.FindByID(ctx, id)
		if err != nil || b == nil {
			return nil, err
		}
		return bookingRecord(b), nil
	case entity.KindCustomTourRequest:
		t, err := s.repo.TourRequest.FindByID(ctx, id)
		if err != nil || t == nil {
			return nil, err
		}
		return tourRequestRecord(t), nil
	case entity.KindCustomBooking:
		cb, err := s.repo.CustomBooking.FindByID(ctx, id)
		if err != nil || cb == nil {
			return nil, err
		}
		return customBookingRecord(cb), nil
	}
	return nil, nil
}

func (s *trackingService) search(ctx context.Context, kind entity.RecordKind, fragment string) ([]trackedRecord, error) {
	limit := maxTrackingMatches + 1
	var out []trackedRecord

	switch kind {
	case entity.KindBooking:
		found, err := s.repo.Booking.SearchByCode(ctx, fragment, limit)
		if err != nil {
			return nil, err
		}
		for _, b := range found {
			out = append(out, *bookingRecord(b))
		}
	case entity.KindCustomTourRequest:
		found, err := s.repo.TourRequest.SearchByCode(ctx, fragment, limit)
		if err != nil {
			return nil, err
		}
		for _, t := range found {
			out = append(out, *tourRequestRecord(t))
		}
	case entity.KindCustomBooking:
		found, err := s.repo.CustomBooking.SearchByCode(ctx, fragment, limit)
		if err != nil {
			return nil, err
		}
		for _, cb := range found {
			out = append(out, *customBookingRecord(cb))
		}
	}

	return out, nil
}

func bookingRecord(b *entity.Booking) *trackedRecord {
	return &trackedRecord{kind: entity.KindBooking, id: b.ID, codes: b.Codes(), resp: response.BookingToTracking(b)}
}

func tourRequestRecord(t *entity.CustomTourRequest) *trackedRecord {
	return &trackedRecord{kind: entity.KindCustomTourRequest, id: t.ID, codes: []string{t.TrackingNumber}, resp: response.TourRequestToTracking(t)}
}

func customBookingRecord(cb *entity.CustomBooking) *trackedRecord {
	return &trackedRecord{kind: entity.KindCustomBooking, id: cb.ID, codes: []string{cb.CustomBookingID}, resp: response.CustomBookingToTracking(cb)}
}
