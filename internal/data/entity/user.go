package entity

import (
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleUser     UserRole = "USER"
	RoleStaff    UserRole = "STAFF"
	RoleOperator UserRole = "OPERATOR"
	RoleAdmin    UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleOperator, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole is case-insensitive.
func ParseUserRole(s string) (UserRole, error) {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role: %s", s)
	}
	return role, nil
}

type User struct {
	Base
	Username string   `db:"username"`
	Email    string   `db:"email"`
	Role     UserRole `db:"role"`
	IsActive bool     `db:"is_active"`
}

// Actor is the authenticated caller extracted from a verified token.
type Actor struct {
	SubjectID string
	Role      UserRole
}
