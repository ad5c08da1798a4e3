package entity

import (
	"time"

	"github.com/google/uuid"
)

type CustomTourRequest struct {
	Base
	TrackingNumber  string            `db:"tracking_number"`
	ContactName     string            `db:"contact_name"`
	ContactEmail    string            `db:"contact_email"`
	ContactPhone    string            `db:"contact_phone"`
	Destination     string            `db:"destination"`
	StartDate       time.Time         `db:"start_date"`
	EndDate         time.Time         `db:"end_date"`
	NumberOfPeople  int               `db:"number_of_people"`
	Budget          *float64          `db:"budget"`
	SpecialRequests *string           `db:"special_requests"`
	Status          TourRequestStatus `db:"status"`
	AssignedStaffID *uuid.UUID        `db:"assigned_staff_id"`
	ResponseNotes   *string           `db:"response_notes"`
	EstimatedCost   *float64          `db:"estimated_cost"`
	ResponseDate    *time.Time        `db:"response_date"`
}
