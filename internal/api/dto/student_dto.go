package dto

import (
	"time"

	"github.com/practice-kit/practice-service/internal/domain"
)

// StudentRequest payload for create and update.
type StudentRequest struct {
	Name          string               `json:"name"`
	Status        domain.StudentStatus `json:"status"`
	BirthDate     *string              `json:"birth_date"`
	ParentName    string               `json:"parent_name"`
	ParentContact string               `json:"parent_contact"`
	Address       string               `json:"address"`
	Service       string               `json:"service"`
	StaffHandle   string               `json:"staff_handle"`
	MonthlyFee    float64              `json:"monthly_fee"`
	Observations  string               `json:"observations"`
}

// StudentResponse is the wire form of a student record.
type StudentResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Status        domain.StudentStatus `json:"status"`
	BirthDate     *string              `json:"birth_date,omitempty"`
	ParentName    string               `json:"parent_name,omitempty"`
	ParentContact string               `json:"parent_contact,omitempty"`
	Address       string               `json:"address,omitempty"`
	Service       string               `json:"service,omitempty"`
	StaffHandle   string               `json:"staff_handle"`
	MonthlyFee    float64              `json:"monthly_fee"`
	Observations  string               `json:"observations,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ProgressEntryRequest payload for appending to the progress log.
type ProgressEntryRequest struct {
	Content string `json:"content"`
}

// ProgressEntryResponse is the wire form of one progress log entry.
type ProgressEntryResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
