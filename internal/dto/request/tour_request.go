package request

import "strings"

type CreateTourRequestRequest struct {
	ContactName     string  `json:"contact_name" validate:"required,max=100"`
	ContactEmail    string  `json:"contact_email" validate:"required,contact_email,max=255"`
	ContactPhone    string  `json:"contact_phone" validate:"required,max=30"`
	Destination     string  `json:"destination" validate:"required,max=200"`
	StartDate       string  `json:"start_date" validate:"required"`
	EndDate         string  `json:"end_date" validate:"required"`
	NumberOfPeople  Number  `json:"number_of_people"`
	Budget          Number  `json:"budget"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

func (r *CreateTourRequestRequest) Trim() {
	r.ContactName = strings.TrimSpace(r.ContactName)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.Destination = strings.TrimSpace(r.Destination)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.SpecialRequests = trimOptional(r.SpecialRequests)
}

// UpdateTourRequestRequest is a partial update; nil fields are left untouched.
type UpdateTourRequestRequest struct {
	Status          *string `json:"status,omitempty"`
	AssignedStaffID *string `json:"assigned_staff_id,omitempty"`
	ResponseNotes   *string `json:"response_notes,omitempty"`
	EstimatedCost   *Number `json:"estimated_cost,omitempty"`
}

func (r *UpdateTourRequestRequest) IsEmpty() bool {
	return r.Status == nil && r.AssignedStaffID == nil && r.ResponseNotes == nil && r.EstimatedCost == nil
}

type TourRequestListRequest struct {
	PaginatedRequest
	Status string
}
