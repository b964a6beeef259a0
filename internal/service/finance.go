package service

import (
	"sort"

	"github.com/practice-kit/practice-service/internal/domain"
)

// Summary holds the rolled-up financial figures for one period.
type Summary struct {
	Period       string  `json:"period"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// Summarize rolls billing entries, misc income and expenses for the period
// into income, expense and balance figures. Only paid billing entries count
// as income; misc income has no status gate. Every expense counts regardless
// of status (expenses incurred, not expenses paid). The balance may be
// negative.
func Summarize(entries []domain.BillingEntry, incomes []domain.MiscIncome, expenses []domain.GeneralExpense, period string) Summary {
	summary := Summary{Period: period}

	for _, entry := range entries {
		if entry.Status == domain.BillingStatusPaid && domain.PeriodMatches(entry.Period, period) {
			summary.TotalIncome += entry.Amount
		}
	}
	for _, income := range incomes {
		if domain.PeriodMatches(income.Period, period) {
			summary.TotalIncome += income.Amount
		}
	}
	for _, expense := range expenses {
		if domain.PeriodMatches(expense.Period, period) {
			summary.TotalExpense += expense.Amount
		}
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary
}

// ServiceRevenue is one row of the per-service revenue breakdown.
type ServiceRevenue struct {
	Service string  `json:"service"`
	Revenue float64 `json:"revenue"`
}

// RevenueByService groups paid billing entries for the period by the owning
// student's service label. Entries referencing an unknown student are
// excluded from the breakdown.
func RevenueByService(entries []domain.BillingEntry, students []domain.Student, period string) []ServiceRevenue {
	serviceByStudent := make(map[string]string, len(students))
	for _, s := range students {
		serviceByStudent[s.ID] = s.Service
	}

	totals := map[string]float64{}
	for _, entry := range entries {
		if entry.Status != domain.BillingStatusPaid || !domain.PeriodMatches(entry.Period, period) {
			continue
		}
		service, ok := serviceByStudent[entry.StudentID]
		if !ok {
			continue
		}
		totals[service] += entry.Amount
	}

	result := make([]ServiceRevenue, 0, len(totals))
	for service, revenue := range totals {
		result = append(result, ServiceRevenue{Service: service, Revenue: revenue})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Service < result[j].Service })
	return result
}

// StaffPerformance is one row of the team performance report.
type StaffPerformance struct {
	Handle            string  `json:"handle"`
	Name              string  `json:"name"`
	CompletedSessions int     `json:"completed_sessions"`
	EstimatedEarnings float64 `json:"estimated_earnings"`
}

// TeamPerformance counts completed sessions per staff member for the period
// and estimates earnings from the member's first configured rate.
func TeamPerformance(staff []domain.StaffMember, classEvents []domain.ClassEvent, period string) []StaffPerformance {
	completed := map[string]int{}
	for _, event := range classEvents {
		if event.Status != domain.EventStatusCompleted {
			continue
		}
		if !domain.PeriodMatches(event.Date.Format("2006-01"), period) {
			continue
		}
		completed[event.StaffHandle]++
	}

	result := make([]StaffPerformance, 0, len(staff))
	for _, member := range staff {
		rate := 0.0
		if len(member.Rates) > 0 {
			rate = member.Rates[0].HourlyRate
		}
		sessions := completed[member.Handle]
		result = append(result, StaffPerformance{
			Handle:            member.Handle,
			Name:              member.Name,
			CompletedSessions: sessions,
			EstimatedEarnings: float64(sessions) * rate,
		})
	}
	return result
}
