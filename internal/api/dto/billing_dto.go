package dto

import (
	"time"

	"github.com/practice-kit/practice-service/internal/domain"
)

// GenerateBillingRequest names the month to generate charges for.
type GenerateBillingRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// BillingStatusRequest payload for payment status moves.
type BillingStatusRequest struct {
	Status domain.BillingStatus `json:"status"`
}

// BillingEntryResponse is the wire form of one monthly charge.
type BillingEntryResponse struct {
	ID          string               `json:"id"`
	StudentID   string               `json:"student_id"`
	Description string               `json:"description"`
	Amount      float64              `json:"amount"`
	Period      string               `json:"period"`
	Status      domain.BillingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// IncomeRequest payload for misc income entries.
type IncomeRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Period      string  `json:"period"`
}

// IncomeResponse is the wire form of a misc income entry.
type IncomeResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Period      string    `json:"period"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseRequest payload for general expenses.
type ExpenseRequest struct {
	Description string               `json:"description"`
	Amount      float64              `json:"amount"`
	Period      string               `json:"period"`
	Status      domain.ExpenseStatus `json:"status"`
}

// ExpenseResponse is the wire form of a general expense.
type ExpenseResponse struct {
	ID          string               `json:"id"`
	Description string               `json:"description"`
	Amount      float64              `json:"amount"`
	Period      string               `json:"period"`
	Status      domain.ExpenseStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}
