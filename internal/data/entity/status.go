package entity

import (
	"fmt"
	"slices"
	"strings"
)

// transitions maps each status to the statuses it may move to.
// A status with an empty slice is terminal.
type transitions[S ~string] map[S][]S

func (t transitions[S]) valid(s S) bool {
	_, ok := t[s]
	return ok
}

func (t transitions[S]) allows(from, to S) bool {
	return slices.Contains(t[from], to)
}

func (t transitions[S]) terminal(s S) bool {
	allowed, ok := t[s]
	return !ok || len(allowed) == 0
}

func parseStatus[S ~string](t transitions[S], name, s string) (S, error) {
	status := S(strings.ToUpper(strings.TrimSpace(s)))
	if !t.valid(status) {
		return "", fmt.Errorf("invalid %s: %s", name, s)
	}
	return status, nil
}

// ==================== BOOKING ====================

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

var bookingTransitions = transitions[BookingStatus]{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

func (s BookingStatus) IsValid() bool { return bookingTransitions.valid(s) }

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	return bookingTransitions.allows(s, target)
}

func (s BookingStatus) AllowedTransitions() []BookingStatus {
	return slices.Clone(bookingTransitions[s])
}

func (s BookingStatus) IsTerminal() bool { return bookingTransitions.terminal(s) }

// CanBeDeleted is false only for COMPLETED: completed trips are a permanent record.
func (s BookingStatus) CanBeDeleted() bool { return s != BookingStatusCompleted }

func (s BookingStatus) String() string { return string(s) }

func ParseBookingStatus(s string) (BookingStatus, error) {
	return parseStatus(bookingTransitions, "booking status", s)
}

// ==================== PAYMENT ====================

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

var paymentTransitions = transitions[PaymentStatus]{
	PaymentStatusPending:  {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusFailed:   {PaymentStatusPaid},
	PaymentStatusPaid:     {PaymentStatusRefunded},
	PaymentStatusRefunded: {},
}

func (s PaymentStatus) IsValid() bool { return paymentTransitions.valid(s) }

func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	return paymentTransitions.allows(s, target)
}

func (s PaymentStatus) AllowedTransitions() []PaymentStatus {
	return slices.Clone(paymentTransitions[s])
}

func (s PaymentStatus) String() string { return string(s) }

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseStatus(paymentTransitions, "payment status", s)
}

// ==================== CUSTOM TOUR REQUEST ====================

type TourRequestStatus string

const (
	TourRequestStatusPending    TourRequestStatus = "PENDING"
	TourRequestStatusInProgress TourRequestStatus = "IN_PROGRESS"
	TourRequestStatusResponded  TourRequestStatus = "RESPONDED"
	TourRequestStatusAccepted   TourRequestStatus = "ACCEPTED"
	TourRequestStatusRejected   TourRequestStatus = "REJECTED"
)

var tourRequestTransitions = transitions[TourRequestStatus]{
	TourRequestStatusPending:    {TourRequestStatusInProgress, TourRequestStatusRejected},
	TourRequestStatusInProgress: {TourRequestStatusResponded, TourRequestStatusAccepted, TourRequestStatusRejected},
	TourRequestStatusResponded:  {TourRequestStatusAccepted, TourRequestStatusRejected},
	TourRequestStatusAccepted:   {},
	TourRequestStatusRejected:   {},
}

func (s TourRequestStatus) IsValid() bool { return tourRequestTransitions.valid(s) }

// CanTransitionTo applies the strict table. Staying in the same status is
// always allowed so that notes and cost can be edited without a transition.
func (s TourRequestStatus) CanTransitionTo(target TourRequestStatus) bool {
	return s == target || tourRequestTransitions.allows(s, target)
}

func (s TourRequestStatus) AllowedTransitions() []TourRequestStatus {
	return slices.Clone(tourRequestTransitions[s])
}

func (s TourRequestStatus) IsTerminal() bool { return tourRequestTransitions.terminal(s) }

func (s TourRequestStatus) String() string { return string(s) }

func ParseTourRequestStatus(s string) (TourRequestStatus, error) {
	return parseStatus(tourRequestTransitions, "tour request status", s)
}

// ==================== CUSTOM BOOKING ====================

type CustomBookingStatus string

const (
	CustomBookingStatusPending   CustomBookingStatus = "PENDING"
	CustomBookingStatusConfirmed CustomBookingStatus = "CONFIRMED"
	CustomBookingStatusCancelled CustomBookingStatus = "CANCELLED"
)

var customBookingTransitions = transitions[CustomBookingStatus]{
	CustomBookingStatusPending:   {CustomBookingStatusConfirmed, CustomBookingStatusCancelled},
	CustomBookingStatusConfirmed: {CustomBookingStatusCancelled},
	CustomBookingStatusCancelled: {},
}

func (s CustomBookingStatus) IsValid() bool { return customBookingTransitions.valid(s) }

func (s CustomBookingStatus) CanTransitionTo(target CustomBookingStatus) bool {
	return customBookingTransitions.allows(s, target)
}

func (s CustomBookingStatus) AllowedTransitions() []CustomBookingStatus {
	return slices.Clone(customBookingTransitions[s])
}

func (s CustomBookingStatus) String() string { return string(s) }

func ParseCustomBookingStatus(s string) (CustomBookingStatus, error) {
	return parseStatus(customBookingTransitions, "custom booking status", s)
}
