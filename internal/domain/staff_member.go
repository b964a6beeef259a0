package domain

import (
	"strings"
	"time"
)

// StaffRole enumerates practice operator roles.
type StaffRole string

const (
	StaffRoleAdmin   StaffRole = "ADMIN"
	StaffRoleTeacher StaffRole = "TEACHER"
)

// ServiceRate pairs a service type with the hourly rate paid for it.
type ServiceRate struct {
	Service    string  `json:"service"`
	HourlyRate float64 `json:"hourly_rate"`
}

// StaffMember models a teacher/therapist or an administrator.
type StaffMember struct {
	ID           string
	Handle       string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Active       bool
	Rates        []ServiceRate
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the member holds the administrator role.
func (s *StaffMember) IsAdmin() bool {
	return s != nil && s.Role == StaffRoleAdmin
}

// ValidStaffRole reports whether the role value is one of the known roles.
func ValidStaffRole(role StaffRole) bool {
	return role == StaffRoleAdmin || role == StaffRoleTeacher
}

// NormalizeHandle lowercases a login handle for case-insensitive lookup.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}
