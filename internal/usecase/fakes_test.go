package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// store is an in-memory stand-in for the database. All fake repositories
// share one mutex so multi-table checks see a consistent view.
type store struct {
	mu             sync.Mutex
	bookings       map[uuid.UUID]*entity.Booking
	tourRequests   map[uuid.UUID]*entity.CustomTourRequest
	customBookings map[uuid.UUID]*entity.CustomBooking
	packages       map[uuid.UUID]*entity.TravelPackage
}

func newStore() *store {
	return &store{
		bookings:       map[uuid.UUID]*entity.Booking{},
		tourRequests:   map[uuid.UUID]*entity.CustomTourRequest{},
		customBookings: map[uuid.UUID]*entity.CustomBooking{},
		packages:       map[uuid.UUID]*entity.TravelPackage{},
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		Booking:       &fakeBookingRepo{s: s},
		TourRequest:   &fakeTourRequestRepo{s: s},
		CustomBooking: &fakeCustomBookingRepo{s: s},
		Package:       &fakePackageRepo{s: s},
	}
}

func (s *store) addPackage(p *entity.TravelPackage) *entity.TravelPackage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.packages[p.ID] = p
	return p
}

func (s *store) addBooking(b *entity.Booking) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.bookings[b.ID] = b
	return b
}

func (s *store) addTourRequest(t *entity.CustomTourRequest) *entity.CustomTourRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.tourRequests[t.ID] = t
	return t
}

func (s *store) addCustomBooking(cb *entity.CustomBooking) *entity.CustomBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cb.ID == uuid.Nil {
		cb.ID = uuid.New()
	}
	s.customBookings[cb.ID] = cb
	return cb
}

func (s *store) booking(id uuid.UUID) *entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}

func (s *store) tourRequest(id uuid.UUID) *entity.CustomTourRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tourRequests[id]
}

func (s *store) customBooking(id uuid.UUID) *entity.CustomBooking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customBookings[id]
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ==================== BOOKINGS ====================

type fakeBookingRepo struct{ s *store }

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bookings {
		if existing.BookingNumber == b.BookingNumber {
			return fmt.Errorf("%w (bookings_booking_number_key)", repository.ErrDuplicateCode)
		}
	}
	r.s.bookings[b.ID] = copyOf(b)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyOf(r.s.bookings[id]), nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookingRepo) FindByCode(_ context.Context, code string) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if slices.Contains(b.Codes(), code) {
			return copyOf(b), nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) SearchByCode(_ context.Context, fragment string, limit int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		for _, code := range b.Codes() {
			if strings.Contains(strings.ToUpper(code), strings.ToUpper(fragment)) {
				out = append(out, copyOf(b))
				break
			}
		}
	}
	slices.SortFunc(out, func(a, b *entity.Booking) int { return strings.Compare(a.BookingNumber, b.BookingNumber) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.PaymentStatus != nil && b.PaymentStatus != *filter.PaymentStatus {
			continue
		}
		out = append(out, copyOf(b))
	}
	slices.SortFunc(out, func(a, b *entity.Booking) int { return strings.Compare(a.BookingNumber, b.BookingNumber) })
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r *fakeBookingRepo) Count(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	all, _ := r.List(ctx, filter, 1<<30, 0)
	return int64(len(all)), nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if b.Status != from {
		return repository.ErrStaleState
	}
	b.Status, b.UpdatedAt = to, at
	return nil
}

func (r *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, from, to entity.PaymentStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if b.PaymentStatus != from {
		return repository.ErrStaleState
	}
	b.PaymentStatus, b.UpdatedAt = to, at
	return nil
}

func (r *fakeBookingRepo) CountByTourRequestID(_ context.Context, tourRequestID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if b.CustomTourRequestID != nil && *b.CustomTourRequestID == tourRequestID {
			n++
		}
	}
	return n, nil
}

// ==================== TOUR REQUESTS ====================

type fakeTourRequestRepo struct{ s *store }

func (r *fakeTourRequestRepo) Create(_ context.Context, t *entity.CustomTourRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.tourRequests {
		if existing.TrackingNumber == t.TrackingNumber {
			return fmt.Errorf("%w (custom_tour_requests_tracking_number_key)", repository.ErrDuplicateCode)
		}
	}
	r.s.tourRequests[t.ID] = copyOf(t)
	return nil
}

func (r *fakeTourRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CustomTourRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyOf(r.s.tourRequests[id]), nil
}

func (r *fakeTourRequestRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.CustomTourRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeTourRequestRepo) FindByCode(_ context.Context, code string) (*entity.CustomTourRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tourRequests {
		if t.TrackingNumber == code {
			return copyOf(t), nil
		}
	}
	return nil, nil
}

func (r *fakeTourRequestRepo) SearchByCode(_ context.Context, fragment string, limit int) ([]*entity.CustomTourRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CustomTourRequest
	for _, t := range r.s.tourRequests {
		if strings.Contains(strings.ToUpper(t.TrackingNumber), strings.ToUpper(fragment)) {
			out = append(out, copyOf(t))
		}
	}
	slices.SortFunc(out, func(a, b *entity.CustomTourRequest) int { return strings.Compare(a.TrackingNumber, b.TrackingNumber) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTourRequestRepo) List(_ context.Context, status *entity.TourRequestStatus, limit, offset int) ([]*entity.CustomTourRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CustomTourRequest
	for _, t := range r.s.tourRequests {
		if status == nil || t.Status == *status {
			out = append(out, copyOf(t))
		}
	}
	slices.SortFunc(out, func(a, b *entity.CustomTourRequest) int { return strings.Compare(a.TrackingNumber, b.TrackingNumber) })
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r *fakeTourRequestRepo) Count(ctx context.Context, status *entity.TourRequestStatus) (int64, error) {
	all, _ := r.List(ctx, status, 1<<30, 0)
	return int64(len(all)), nil
}

func (r *fakeTourRequestRepo) Update(_ context.Context, t *entity.CustomTourRequest, expectedStatus entity.TourRequestStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.tourRequests[t.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != expectedStatus {
		return repository.ErrStaleState
	}
	stored.Status = t.Status
	stored.AssignedStaffID = t.AssignedStaffID
	stored.ResponseNotes = t.ResponseNotes
	stored.EstimatedCost = t.EstimatedCost
	stored.ResponseDate = t.ResponseDate
	stored.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *fakeTourRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tourRequests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tourRequests, id)
	return nil
}

// ==================== CUSTOM BOOKINGS ====================

type fakeCustomBookingRepo struct{ s *store }

func (r *fakeCustomBookingRepo) Create(_ context.Context, cb *entity.CustomBooking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customBookings {
		if existing.CustomBookingID == cb.CustomBookingID {
			return fmt.Errorf("%w (custom_bookings_custom_booking_id_key)", repository.ErrDuplicateCode)
		}
	}
	r.s.customBookings[cb.ID] = copyOf(cb)
	return nil
}

func (r *fakeCustomBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CustomBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyOf(r.s.customBookings[id]), nil
}

func (r *fakeCustomBookingRepo) FindByCode(_ context.Context, code string) (*entity.CustomBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cb := range r.s.customBookings {
		if cb.CustomBookingID == code {
			return copyOf(cb), nil
		}
	}
	return nil, nil
}

func (r *fakeCustomBookingRepo) SearchByCode(_ context.Context, fragment string, limit int) ([]*entity.CustomBooking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CustomBooking
	for _, cb := range r.s.customBookings {
		if strings.Contains(strings.ToUpper(cb.CustomBookingID), strings.ToUpper(fragment)) {
			out = append(out, copyOf(cb))
		}
	}
	slices.SortFunc(out, func(a, b *entity.CustomBooking) int { return strings.Compare(a.CustomBookingID, b.CustomBookingID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeCustomBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.CustomBookingStatus, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cb, ok := r.s.customBookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if cb.Status != from {
		return repository.ErrStaleState
	}
	cb.Status, cb.UpdatedAt = to, at
	return nil
}

func (r *fakeCustomBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customBookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.customBookings, id)
	return nil
}

// ==================== PACKAGES ====================

type fakePackageRepo struct{ s *store }

func (r *fakePackageRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return copyOf(r.s.packages[id]), nil
}

func (r *fakePackageRepo) FindAll(_ context.Context, offset, limit int, activeOnly bool) ([]*entity.TravelPackage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TravelPackage
	for _, p := range r.s.packages {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, copyOf(p))
	}
	slices.SortFunc(out, func(a, b *entity.TravelPackage) int { return strings.Compare(a.Title, b.Title) })
	if offset >= len(out) {
		return nil, nil
	}
	return out[offset:min(offset+limit, len(out))], nil
}

func (r *fakePackageRepo) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	all, _ := r.FindAll(ctx, 0, 1<<30, activeOnly)
	return int64(len(all)), nil
}

// ==================== CACHE ====================

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]cache.Entry
	gets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]cache.Entry{}}
}

func (c *fakeCache) Get(_ context.Context, code string) (*cache.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	e, ok := c.entries[code]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (c *fakeCache) Set(_ context.Context, code string, entry cache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[code] = entry
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, codes ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, code := range codes {
		delete(c.entries, code)
	}
	return nil
}

func (c *fakeCache) has(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[code]
	return ok
}

// ==================== FIXTURE ====================

// fixedNow is 2025-08-01 09:30 UTC; trips dated from 2025-08-15 are in the future.
var fixedNow = time.Date(2025, time.August, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() utils.Clock {
	return utils.ClockFunc(func() time.Time { return fixedNow })
}

// sequence returns the given values in order and then repeats the last one.
func sequence(values ...int) func(int) int {
	var mu sync.Mutex
	i := 0
	return func(n int) int {
		mu.Lock()
		defer mu.Unlock()
		v := values[min(i, len(values)-1)]
		i++
		return v % n
	}
}

type fixture struct {
	store *store
	repo  *repository.Repository
	cache *fakeCache
	deps  Dependencies
	svc   *Service
}

type fixtureOption func(*Dependencies)

func withIntn(intn func(int) int) fixtureOption {
	return func(d *Dependencies) {
		d.IDs = utils.NewIdentifierGeneratorWithSource(d.Clock, intn)
	}
}

func withPolicy(p *Policy) fixtureOption {
	return func(d *Dependencies) { d.Policy = p }
}

func withLegacyTourTransitions() fixtureOption {
	return func(d *Dependencies) { d.LegacyTourTransitions = true }
}

func withLegacyTrackingID() fixtureOption {
	return func(d *Dependencies) { d.LegacyTrackingID = true }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	s := newStore()
	repo := s.repository()
	c := newFakeCache()
	deps := Dependencies{
		Clock:    fixedClock(),
		Location: time.UTC,
		Cache:    c,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &fixture{
		store: s,
		repo:  repo,
		cache: c,
		deps:  deps,
		svc:   NewService(repo, deps, zap.NewNop()),
	}
}

var (
	admin    = &entity.Actor{SubjectID: uuid.NewString(), Role: entity.RoleAdmin}
	staff    = &entity.Actor{SubjectID: uuid.NewString(), Role: entity.RoleStaff}
	operator = &entity.Actor{SubjectID: uuid.NewString(), Role: entity.RoleOperator}
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }
