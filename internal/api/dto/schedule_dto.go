package dto

import (
	"time"

	"github.com/practice-kit/practice-service/internal/domain"
)

// EventRequest payload for create and update.
type EventRequest struct {
	StudentID    string `json:"student_id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	Service      string `json:"service"`
	Observations string `json:"observations"`
}

// EventStatusRequest payload for lifecycle moves.
type EventStatusRequest struct {
	Status domain.EventStatus `json:"status"`
}

// EventResponse is the wire form of a calendar session.
type EventResponse struct {
	ID           string             `json:"id"`
	StudentID    string             `json:"student_id"`
	StaffHandle  string             `json:"staff_handle"`
	Title        string             `json:"title"`
	Date         string             `json:"date"`
	StartTime    string             `json:"start_time,omitempty"`
	Status       domain.EventStatus `json:"status"`
	Service      string             `json:"service,omitempty"`
	Observations string             `json:"observations,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
