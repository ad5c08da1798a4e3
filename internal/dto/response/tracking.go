package response

import "travel-booking/internal/data/entity"

// TrackingResponse carries exactly one of Booking, TourRequest or CustomBooking,
// selected by Kind.
type TrackingResponse struct {
	Kind          entity.RecordKind      `json:"kind"`
	Code          string                 `json:"code"`
	Status        string                 `json:"status"`
	Booking       *BookingResponse       `json:"booking,omitempty"`
	TourRequest   *TourRequestResponse   `json:"tour_request,omitempty"`
	CustomBooking *CustomBookingResponse `json:"custom_booking,omitempty"`
}

// TrackingMatch summarises one candidate of an ambiguous partial lookup.
type TrackingMatch struct {
	Kind   entity.RecordKind `json:"kind"`
	Code   string            `json:"code"`
	Status string            `json:"status"`
}

func BookingToTracking(b *entity.Booking) *TrackingResponse {
	resp := BookingToResponse(b)
	return &TrackingResponse{
		Kind:    entity.KindBooking,
		Code:    b.BookingNumber,
		Status:  b.Status.String(),
		Booking: &resp,
	}
}

func TourRequestToTracking(t *entity.CustomTourRequest) *TrackingResponse {
	resp := TourRequestToResponse(t)
	return &TrackingResponse{
		Kind:        entity.KindCustomTourRequest,
		Code:        t.TrackingNumber,
		Status:      t.Status.String(),
		TourRequest: &resp,
	}
}

func CustomBookingToTracking(cb *entity.CustomBooking) *TrackingResponse {
	resp := CustomBookingToResponse(cb)
	return &TrackingResponse{
		Kind:          entity.KindCustomBooking,
		Code:          cb.CustomBookingID,
		Status:        cb.Status.String(),
		CustomBooking: &resp,
	}
}
