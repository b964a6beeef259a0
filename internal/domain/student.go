package domain

import "time"

// StudentStatus represents enrollment states.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "ACTIVE"
	StudentStatusInactive StudentStatus = "INACTIVE"
)

// Student is a client of the practice (student or patient).
type Student struct {
	ID            string
	Name          string
	Status        StudentStatus
	BirthDate     *time.Time
	ParentName    string
	ParentContact string
	Address       string
	Service       string
	StaffHandle   string
	MonthlyFee    float64
	Observations  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProgressEntry is an append-only progress log record; entries are never
// edited or removed once written.
type ProgressEntry struct {
	ID        string
	StudentID string
	Author    string
	Content   string
	CreatedAt time.Time
}
