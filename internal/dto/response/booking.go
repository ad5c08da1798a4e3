package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

const dateLayout = "2006-01-02"

type BookingResponse struct {
	ID                  string               `json:"id"`
	BookingNumber       string               `json:"booking_number"`
	TrackingID          *string              `json:"tracking_id,omitempty"`
	UserID              *string              `json:"user_id,omitempty"`
	CustomerName        string               `json:"customer_name"`
	CustomerEmail       string               `json:"customer_email"`
	CustomerPhone       string               `json:"customer_phone"`
	PackageID           *string              `json:"package_id,omitempty"`
	CustomTourRequestID *string              `json:"custom_tour_request_id,omitempty"`
	StartDate           string               `json:"start_date"`
	EndDate             string               `json:"end_date"`
	NumberOfPeople      int                  `json:"number_of_people"`
	PricePerPerson      float64              `json:"price_per_person"`
	TotalAmount         float64              `json:"total_amount"`
	Status              entity.BookingStatus `json:"status"`
	PaymentStatus       entity.PaymentStatus `json:"payment_status"`
	SpecialRequests     *string              `json:"special_requests,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// BookingCreatedResponse is what a customer gets back after booking.
type BookingCreatedResponse struct {
	ID            string               `json:"id"`
	BookingNumber string               `json:"booking_number"`
	TrackingID    *string              `json:"tracking_id,omitempty"`
	Status        entity.BookingStatus `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	TotalAmount   float64              `json:"total_amount"`
}

// Helper converters
func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID.String(),
		BookingNumber:   b.BookingNumber,
		TrackingID:      b.TrackingID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		StartDate:       b.StartDate.Format(dateLayout),
		EndDate:         b.EndDate.Format(dateLayout),
		NumberOfPeople:  b.NumberOfPeople,
		PricePerPerson:  b.PricePerPerson,
		TotalAmount:     b.TotalAmount,
		Status:          b.Status,
		PaymentStatus:   b.PaymentStatus,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.UserID != nil {
		id := b.UserID.String()
		resp.UserID = &id
	}
	if b.PackageID != nil {
		id := b.PackageID.String()
		resp.PackageID = &id
	}
	if b.CustomTourRequestID != nil {
		id := b.CustomTourRequestID.String()
		resp.CustomTourRequestID = &id
	}

	return resp
}

func BookingToCreatedResponse(b *entity.Booking) BookingCreatedResponse {
	return BookingCreatedResponse{
		ID:            b.ID.String(),
		BookingNumber: b.BookingNumber,
		TrackingID:    b.TrackingID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
	}
}
