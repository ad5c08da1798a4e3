package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking references exactly one of PackageID or CustomTourRequestID.
// Contact fields are a snapshot taken at booking time.
type Booking struct {
	Base
	BookingNumber       string        `db:"booking_number"`
	TrackingID          *string       `db:"tracking_id"`
	UserID              *uuid.UUID    `db:"user_id"`
	CustomerName        string        `db:"customer_name"`
	CustomerEmail       string        `db:"customer_email"`
	CustomerPhone       string        `db:"customer_phone"`
	PackageID           *uuid.UUID    `db:"package_id"`
	CustomTourRequestID *uuid.UUID    `db:"custom_tour_request_id"`
	StartDate           time.Time     `db:"start_date"`
	EndDate             time.Time     `db:"end_date"`
	NumberOfPeople      int           `db:"number_of_people"`
	PricePerPerson      float64       `db:"price_per_person"`
	TotalAmount         float64       `db:"total_amount"`
	Status              BookingStatus `db:"status"`
	PaymentStatus       PaymentStatus `db:"payment_status"`
	SpecialRequests     *string       `db:"special_requests"`
}

// Codes returns every tracking code the booking can be looked up by.
func (b *Booking) Codes() []string {
	codes := []string{b.BookingNumber}
	if b.TrackingID != nil && *b.TrackingID != "" {
		codes = append(codes, *b.TrackingID)
	}
	return codes
}
