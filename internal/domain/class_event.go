package domain

import "time"

// EventStatus enumerates lifecycle states for class events.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// ClassEvent is a single calendar session for one student.
type ClassEvent struct {
	ID           string
	StudentID    string
	StaffHandle  string
	Title        string
	Date         time.Time
	StartTime    string
	Status       EventStatus
	Service      string
	Observations string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
