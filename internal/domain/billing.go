package domain

import (
	"fmt"
	"strings"
	"time"
)

// BillingStatus enumerates payment states for a billing entry.
type BillingStatus string

const (
	BillingStatusPaid    BillingStatus = "PAID"
	BillingStatusPending BillingStatus = "PENDING"
	BillingStatusOverdue BillingStatus = "OVERDUE"
)

// BillingEntry is one month's charge owed by one student.
type BillingEntry struct {
	ID          string
	StudentID   string
	Description string
	Amount      float64
	Period      string
	Status      BillingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MiscIncome records income outside of student billing.
type MiscIncome struct {
	ID          string
	Description string
	Amount      float64
	Period      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExpenseStatus enumerates payment states for expenses.
type ExpenseStatus string

const (
	ExpenseStatusPaid    ExpenseStatus = "PAID"
	ExpenseStatusPending ExpenseStatus = "PENDING"
)

// GeneralExpense records an operating expense for a period.
type GeneralExpense struct {
	ID          string
	Description string
	Amount      float64
	Period      string
	Status      ExpenseStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Period formats a year/month pair as the YYYY-MM token used to bucket
// billing, income and expense records.
func Period(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// PeriodMatches reports whether a record's period field belongs to the given
// period token. Prefix comparison tolerates fields carrying extra precision.
func PeriodMatches(recordPeriod, period string) bool {
	return strings.HasPrefix(recordPeriod, period)
}
