package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type TourRequestResponse struct {
	ID              string                   `json:"id"`
	TrackingNumber  string                   `json:"tracking_number"`
	ContactName     string                   `json:"contact_name"`
	ContactEmail    string                   `json:"contact_email"`
	ContactPhone    string                   `json:"contact_phone"`
	Destination     string                   `json:"destination"`
	StartDate       string                   `json:"start_date"`
	EndDate         string                   `json:"end_date"`
	NumberOfPeople  int                      `json:"number_of_people"`
	Budget          *float64                 `json:"budget,omitempty"`
	SpecialRequests *string                  `json:"special_requests,omitempty"`
	Status          entity.TourRequestStatus `json:"status"`
	AssignedStaffID *string                  `json:"assigned_staff_id,omitempty"`
	ResponseNotes   *string                  `json:"response_notes,omitempty"`
	EstimatedCost   *float64                 `json:"estimated_cost,omitempty"`
	ResponseDate    *time.Time               `json:"response_date,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type TourRequestCreatedResponse struct {
	ID             string                   `json:"id"`
	TrackingNumber string                   `json:"tracking_number"`
	Status         entity.TourRequestStatus `json:"status"`
}

func TourRequestToResponse(t *entity.CustomTourRequest) TourRequestResponse {
	resp := TourRequestResponse{
		ID:              t.ID.String(),
		TrackingNumber:  t.TrackingNumber,
		ContactName:     t.ContactName,
		ContactEmail:    t.ContactEmail,
		ContactPhone:    t.ContactPhone,
		Destination:     t.Destination,
		StartDate:       t.StartDate.Format(dateLayout),
		EndDate:         t.EndDate.Format(dateLayout),
		NumberOfPeople:  t.NumberOfPeople,
		Budget:          t.Budget,
		SpecialRequests: t.SpecialRequests,
		Status:          t.Status,
		ResponseNotes:   t.ResponseNotes,
		EstimatedCost:   t.EstimatedCost,
		ResponseDate:    t.ResponseDate,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if t.AssignedStaffID != nil {
		id := t.AssignedStaffID.String()
		resp.AssignedStaffID = &id
	}

	return resp
}

func TourRequestToCreatedResponse(t *entity.CustomTourRequest) TourRequestCreatedResponse {
	return TourRequestCreatedResponse{
		ID:             t.ID.String(),
		TrackingNumber: t.TrackingNumber,
		Status:         t.Status,
	}
}
