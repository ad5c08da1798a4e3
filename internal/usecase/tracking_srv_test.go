package usecase

import (
	"context"
	"fmt"
	"testing"

	"travel-booking/internal/data/cache"
	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByTrackingCode_ExactMatchPerKind(t *testing.T) {
	f := newFixture(t)
	b := f.store.addBooking(&entity.Booking{BookingNumber: "BK-20250801-1111", Status: entity.BookingStatusConfirmed})
	tr := f.store.addTourRequest(&entity.CustomTourRequest{TrackingNumber: "CTR-20250801-1111", Status: entity.TourRequestStatusInProgress})
	cb := f.store.addCustomBooking(&entity.CustomBooking{CustomBookingID: "CB-20250801-1111", Status: entity.CustomBookingStatusPending})
	ctx := context.Background()

	got, err := f.svc.Tracking.FindByTrackingCode(ctx, " bk-20250801-1111 ")
	require.NoError(t, err)
	assert.Equal(t, entity.KindBooking, got.Kind)
	require.NotNil(t, got.Booking)
	assert.Equal(t, b.ID.String(), got.Booking.ID)
	assert.Equal(t, "CONFIRMED", got.Status)

	got, err = f.svc.Tracking.FindByTrackingCode(ctx, "CTR-20250801-1111")
	require.NoError(t, err)
	assert.Equal(t, entity.KindCustomTourRequest, got.Kind)
	assert.Equal(t, tr.ID.String(), got.TourRequest.ID)
	assert.Nil(t, got.Booking)

	got, err = f.svc.Tracking.FindByTrackingCode(ctx, "CB-20250801-1111")
	require.NoError(t, err)
	assert.Equal(t, entity.KindCustomBooking, got.Kind)
	assert.Equal(t, cb.ID.String(), got.CustomBooking.ID)
}

func TestFindByTrackingCode_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.store.addBooking(&entity.Booking{BookingNumber: "BK-20250801-2222", Status: entity.BookingStatusPending})
	ctx := context.Background()

	first, err := f.svc.Tracking.FindByTrackingCode(ctx, "BK-20250801-2222")
	require.NoError(t, err)
	require.True(t, f.cache.has("BK-20250801-2222"))

	second, err := f.svc.Tracking.FindByTrackingCode(ctx, "BK-20250801-2222")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindByTrackingCode_CacheNeverServesStaleStatus(t *testing.T) {
	f := newFixture(t)
	b := f.store.addBooking(&entity.Booking{BookingNumber: "BK-20250801-3333", Status: entity.BookingStatusPending})
	ctx := context.Background()

	_, err := f.svc.Tracking.FindByTrackingCode(ctx, b.BookingNumber)
	require.NoError(t, err)

	f.store.booking(b.ID).Status = entity.BookingStatusConfirmed

	got, err := f.svc.Tracking.FindByTrackingCode(ctx, b.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", got.Status)
}

func TestFindByTrackingCode_DropsDanglingCacheEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cache.Set(ctx, "CB-20250801-4444", cache.Entry{Kind: entity.KindCustomBooking, ID: uuid.New()}))

	_, err := f.svc.Tracking.FindByTrackingCode(ctx, "CB-20250801-4444")
	assert.True(t, apperror.IsNotFound(err))
	assert.False(t, f.cache.has("CB-20250801-4444"))
}

func TestFindByTrackingCode_PartialMatch(t *testing.T) {
	f := newFixture(t)
	f.store.addBooking(&entity.Booking{BookingNumber: "BK-20250801-5555", Status: entity.BookingStatusPending})
	f.store.addBooking(&entity.Booking{BookingNumber: "BK-20250801-5556", Status: entity.BookingStatusCancelled})
	f.store.addTourRequest(&entity.CustomTourRequest{TrackingNumber: "CTR-20250801-7777", Status: entity.TourRequestStatusPending})
	ctx := context.Background()

	t.Run("single candidate", func(t *testing.T) {
		got, err := f.svc.Tracking.FindByTrackingCode(ctx, "7777")
		require.NoError(t, err)
		assert.Equal(t, "CTR-20250801-7777", got.Code)
	})

	t.Run("several candidates", func(t *testing.T) {
		_, err := f.svc.Tracking.FindByTrackingCode(ctx, "0801-555")
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindMultipleMatches, appErr.Kind)

		matches, ok := appErr.Matches.([]response.TrackingMatch)
		require.True(t, ok)
		require.Len(t, matches, 2)
		assert.Equal(t, "BK-20250801-5555", matches[0].Code)
		assert.Equal(t, "CANCELLED", matches[1].Status)
	})

	t.Run("prefix narrows the search", func(t *testing.T) {
		_, err := f.svc.Tracking.FindByTrackingCode(ctx, "CTR-20250801-555")
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("short fragments are not searched", func(t *testing.T) {
		_, err := f.svc.Tracking.FindByTrackingCode(ctx, "777")
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestFindByTrackingCode_CapsMatchList(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 15; i++ {
		f.store.addBooking(&entity.Booking{BookingNumber: fmt.Sprintf("BK-20250801-90%02d", i), Status: entity.BookingStatusPending})
	}

	_, err := f.svc.Tracking.FindByTrackingCode(context.Background(), "20250801-90")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindMultipleMatches, appErr.Kind)
	assert.Len(t, appErr.Matches, maxTrackingMatches)
}

func TestFindByTrackingCode_Blank(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Tracking.FindByTrackingCode(context.Background(), "   ")
	assert.True(t, apperror.IsValidation(err))
}
