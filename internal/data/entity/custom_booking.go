package entity

import (
	"time"

	"github.com/google/uuid"
)

// CustomBooking is a free-form trip proposal, tracked separately from
// CustomTourRequest under its own CB- prefix.
type CustomBooking struct {
	Base
	CustomBookingID string              `db:"custom_booking_id"`
	UserID          *uuid.UUID          `db:"user_id"`
	ContactName     string              `db:"contact_name"`
	ContactEmail    string              `db:"contact_email"`
	ContactPhone    string              `db:"contact_phone"`
	Destination     string              `db:"destination"`
	StartDate       time.Time           `db:"start_date"`
	EndDate         time.Time           `db:"end_date"`
	NumberOfPeople  int                 `db:"number_of_people"`
	Budget          *float64            `db:"budget"`
	RequireGuide    bool                `db:"require_guide"`
	ProposalType    *string             `db:"proposal_type"`
	SpecialRequests *string             `db:"special_requests"`
	Status          CustomBookingStatus `db:"status"`
}
