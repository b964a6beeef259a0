package dto

import (
	"github.com/practice-kit/practice-service/internal/domain"
)

// ServiceRateDTO is the wire form of a per-service pay rate.
type ServiceRateDTO struct {
	Service    string  `json:"service"`
	HourlyRate float64 `json:"hourly_rate"`
}

// StaffCreateRequest payload.
type StaffCreateRequest struct {
	Handle   string           `json:"handle"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     domain.StaffRole `json:"role"`
	Rates    []ServiceRateDTO `json:"rates"`
}

// StaffUpdateRequest payload. Omitted fields keep their current value.
type StaffUpdateRequest struct {
	Name   *string           `json:"name"`
	Email  *string           `json:"email"`
	Role   *domain.StaffRole `json:"role"`
	Active *bool             `json:"active"`
	Rates  *[]ServiceRateDTO `json:"rates"`
}

// StaffResponse is the public view of a staff member.
type StaffResponse struct {
	ID     string           `json:"id"`
	Handle string           `json:"handle"`
	Name   string           `json:"name"`
	Email  string           `json:"email"`
	Role   domain.StaffRole `json:"role"`
	Active bool             `json:"active"`
	Rates  []ServiceRateDTO `json:"rates,omitempty"`
}
