package request

import "strings"

type CreateCustomBookingRequest struct {
	ContactName     string  `json:"contact_name" validate:"required,max=100"`
	ContactEmail    string  `json:"contact_email" validate:"required,contact_email,max=255"`
	ContactPhone    string  `json:"contact_phone" validate:"required,max=30"`
	Destination     string  `json:"destination" validate:"required,max=200"`
	StartDate       string  `json:"start_date" validate:"required"`
	EndDate         string  `json:"end_date" validate:"required"`
	NumberOfPeople  Number  `json:"number_of_people"`
	Budget          Number  `json:"budget"`
	RequireGuide    bool    `json:"require_guide"`
	ProposalType    *string `json:"proposal_type,omitempty" validate:"omitempty,max=50"`
	SpecialRequests *string `json:"special_requests,omitempty"`
}

func (r *CreateCustomBookingRequest) Trim() {
	r.ContactName = strings.TrimSpace(r.ContactName)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.Destination = strings.TrimSpace(r.Destination)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.ProposalType = trimOptional(r.ProposalType)
	r.SpecialRequests = trimOptional(r.SpecialRequests)
}

type UpdateCustomBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
