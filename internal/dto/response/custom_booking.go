package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type CustomBookingResponse struct {
	ID              string                     `json:"id"`
	CustomBookingID string                     `json:"custom_booking_id"`
	UserID          *string                    `json:"user_id,omitempty"`
	ContactName     string                     `json:"contact_name"`
	ContactEmail    string                     `json:"contact_email"`
	ContactPhone    string                     `json:"contact_phone"`
	Destination     string                     `json:"destination"`
	StartDate       string                     `json:"start_date"`
	EndDate         string                     `json:"end_date"`
	NumberOfPeople  int                        `json:"number_of_people"`
	Budget          *float64                   `json:"budget,omitempty"`
	RequireGuide    bool                       `json:"require_guide"`
	ProposalType    *string                    `json:"proposal_type,omitempty"`
	SpecialRequests *string                    `json:"special_requests,omitempty"`
	Status          entity.CustomBookingStatus `json:"status"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

type CustomBookingCreatedResponse struct {
	ID              string                     `json:"id"`
	CustomBookingID string                     `json:"custom_booking_id"`
	Status          entity.CustomBookingStatus `json:"status"`
}

func CustomBookingToResponse(cb *entity.CustomBooking) CustomBookingResponse {
	resp := CustomBookingResponse{
		ID:              cb.ID.String(),
		CustomBookingID: cb.CustomBookingID,
		ContactName:     cb.ContactName,
		ContactEmail:    cb.ContactEmail,
		ContactPhone:    cb.ContactPhone,
		Destination:     cb.Destination,
		StartDate:       cb.StartDate.Format(dateLayout),
		EndDate:         cb.EndDate.Format(dateLayout),
		NumberOfPeople:  cb.NumberOfPeople,
		Budget:          cb.Budget,
		RequireGuide:    cb.RequireGuide,
		ProposalType:    cb.ProposalType,
		SpecialRequests: cb.SpecialRequests,
		Status:          cb.Status,
		CreatedAt:       cb.CreatedAt,
		UpdatedAt:       cb.UpdatedAt,
	}

	if cb.UserID != nil {
		id := cb.UserID.String()
		resp.UserID = &id
	}

	return resp
}

func CustomBookingToCreatedResponse(cb *entity.CustomBooking) CustomBookingCreatedResponse {
	return CustomBookingCreatedResponse{
		ID:              cb.ID.String(),
		CustomBookingID: cb.CustomBookingID,
		Status:          cb.Status,
	}
}
