package request

import "strings"

type CreateBookingRequest struct {
	CustomerName        string  `json:"customer_name" validate:"required,max=100"`
	CustomerEmail       string  `json:"customer_email" validate:"required,contact_email,max=255"`
	CustomerPhone       string  `json:"customer_phone" validate:"required,max=30"`
	PackageID           string  `json:"package_id" validate:"required_without=CustomTourRequestID"`
	CustomTourRequestID string  `json:"custom_tour_request_id" validate:"excluded_with=PackageID"`
	StartDate           string  `json:"start_date" validate:"required"`
	EndDate             string  `json:"end_date" validate:"required"`
	NumberOfPeople      Number  `json:"number_of_people"`
	PricePerPerson      Number  `json:"price_per_person"`
	TotalAmount         Number  `json:"total_amount"`
	SpecialRequests     *string `json:"special_requests,omitempty"`
}

// Trim strips surrounding whitespace from every string field.
func (r *CreateBookingRequest) Trim() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerEmail = strings.TrimSpace(r.CustomerEmail)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	r.PackageID = strings.TrimSpace(r.PackageID)
	r.CustomTourRequestID = strings.TrimSpace(r.CustomTourRequestID)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.SpecialRequests = trimOptional(r.SpecialRequests)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

type BookingListRequest struct {
	PaginatedRequest
	Status        string
	PaymentStatus string
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
