package usecase

import (
	"fmt"
	"slices"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/apperror"
)

// Operation names a role-gated action; the values match utils.PolicyOperations.
type Operation string

const (
	OpBookingList          Operation = "booking.list"
	OpBookingRead          Operation = "booking.read"
	OpBookingUpdateStatus  Operation = "booking.update_status"
	OpBookingUpdatePayment Operation = "booking.update_payment"
	OpBookingDelete        Operation = "booking.delete"
	OpTourRequestList      Operation = "tour_request.list"
	OpTourRequestRead      Operation = "tour_request.read"
	OpTourRequestUpdate    Operation = "tour_request.update"
	OpTourRequestDelete    Operation = "tour_request.delete"
	OpCustomBookingRead    Operation = "custom_booking.read"
	OpCustomBookingUpdate  Operation = "custom_booking.update"
	OpCustomBookingDelete  Operation = "custom_booking.delete"
)

// Policy maps each operation to the roles allowed to perform it. Operations
// without an entry are ADMIN-only.
type Policy struct {
	roles map[Operation][]entity.UserRole
}

func DefaultPolicy() *Policy {
	return &Policy{roles: map[Operation][]entity.UserRole{}}
}

// NewPolicy builds a policy from operation -> role names, as loaded from config.
func NewPolicy(raw map[string][]string) (*Policy, error) {
	p := DefaultPolicy()
	for op, names := range raw {
		roles := make([]entity.UserRole, 0, len(names))
		for _, name := range names {
			role, err := entity.ParseUserRole(name)
			if err != nil {
				return nil, fmt.Errorf("policy %s: %w", op, err)
			}
			roles = append(roles, role)
		}
		p.roles[Operation(op)] = roles
	}
	return p, nil
}

func (p *Policy) Allowed(op Operation) []entity.UserRole {
	if roles, ok := p.roles[op]; ok && len(roles) > 0 {
		return roles
	}
	return []entity.UserRole{entity.RoleAdmin}
}

// Authorize is checked before any lookup or state logic.
func (p *Policy) Authorize(actor *entity.Actor, op Operation) error {
	if actor == nil {
		return apperror.Unauthorized("authentication required")
	}
	if !slices.Contains(p.Allowed(op), actor.Role) {
		return apperror.Forbidden(fmt.Sprintf("role %s is not allowed to perform %s", actor.Role, op))
	}
	return nil
}
