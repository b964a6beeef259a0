package service

import (
	"testing"
	"time"

	"github.com/practice-kit/practice-service/internal/domain"
)

func TestSummarize(t *testing.T) {
	entries := []domain.BillingEntry{
		{StudentID: "s1", Period: "2024-05", Amount: 450, Status: domain.BillingStatusPaid},
		{StudentID: "s2", Period: "2024-05", Amount: 300, Status: domain.BillingStatusPending},
		{StudentID: "s3", Period: "2024-04", Amount: 450, Status: domain.BillingStatusPaid},
	}
	incomes := []domain.MiscIncome{
		{Description: "workshop", Amount: 150, Period: "2024-05"},
		{Description: "materials", Amount: 80, Period: "2024-06"},
	}
	expenses := []domain.GeneralExpense{
		{Description: "rent", Amount: 250, Period: "2024-05", Status: domain.ExpenseStatusPaid},
		{Description: "supplies", Amount: 80, Period: "2024-05", Status: domain.ExpenseStatusPending},
		{Description: "rent", Amount: 250, Period: "2024-04", Status: domain.ExpenseStatusPaid},
	}

	summary := Summarize(entries, incomes, expenses, "2024-05")

	if summary.TotalIncome != 600 {
		t.Errorf("total income = %v, want 600", summary.TotalIncome)
	}
	if summary.TotalExpense != 330 {
		t.Errorf("total expense = %v, want 330", summary.TotalExpense)
	}
	if summary.Balance != 270 {
		t.Errorf("balance = %v, want 270", summary.Balance)
	}
}

func TestSummarizeNegativeBalance(t *testing.T) {
	expenses := []domain.GeneralExpense{
		{Description: "rent", Amount: 500, Period: "2024-05", Status: domain.ExpenseStatusPending},
	}
	summary := Summarize(nil, nil, expenses, "2024-05")
	if summary.Balance != -500 {
		t.Errorf("balance = %v, want -500", summary.Balance)
	}
}

func TestSummarizePeriodPrefixMatch(t *testing.T) {
	// Records carrying day precision still land in their month's bucket.
	entries := []domain.BillingEntry{
		{StudentID: "s1", Period: "2024-05-15", Amount: 100, Status: domain.BillingStatusPaid},
	}
	summary := Summarize(entries, nil, nil, "2024-05")
	if summary.TotalIncome != 100 {
		t.Errorf("total income = %v, want 100", summary.TotalIncome)
	}
}

func TestRevenueByService(t *testing.T) {
	students := []domain.Student{
		{ID: "s1", Service: "piano"},
		{ID: "s2", Service: "speech therapy"},
		{ID: "s3", Service: "piano"},
	}
	entries := []domain.BillingEntry{
		{StudentID: "s1", Period: "2024-05", Amount: 450, Status: domain.BillingStatusPaid},
		{StudentID: "s2", Period: "2024-05", Amount: 300, Status: domain.BillingStatusPaid},
		{StudentID: "s3", Period: "2024-05", Amount: 200, Status: domain.BillingStatusPending},
		{StudentID: "unknown", Period: "2024-05", Amount: 999, Status: domain.BillingStatusPaid},
	}

	breakdown := RevenueByService(entries, students, "2024-05")

	if len(breakdown) != 2 {
		t.Fatalf("breakdown rows = %d, want 2", len(breakdown))
	}
	if breakdown[0].Service != "piano" || breakdown[0].Revenue != 450 {
		t.Errorf("row 0 = %+v, want piano/450", breakdown[0])
	}
	if breakdown[1].Service != "speech therapy" || breakdown[1].Revenue != 300 {
		t.Errorf("row 1 = %+v, want speech therapy/300", breakdown[1])
	}
}

func TestTeamPerformance(t *testing.T) {
	staff := []domain.StaffMember{
		{Handle: "gabriella.souza", Name: "Gabriella", Rates: []domain.ServiceRate{{Service: "piano", HourlyRate: 60}}},
		{Handle: "bruno.costa", Name: "Bruno", Rates: []domain.ServiceRate{{Service: "speech therapy", HourlyRate: 80}, {Service: "piano", HourlyRate: 50}}},
		{Handle: "new.hire", Name: "New Hire"},
	}
	may := func(day int) time.Time { return time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC) }
	classEvents := []domain.ClassEvent{
		{StaffHandle: "gabriella.souza", Date: may(2), Status: domain.EventStatusCompleted},
		{StaffHandle: "gabriella.souza", Date: may(9), Status: domain.EventStatusCompleted},
		{StaffHandle: "gabriella.souza", Date: may(16), Status: domain.EventStatusCancelled},
		{StaffHandle: "bruno.costa", Date: may(3), Status: domain.EventStatusCompleted},
		{StaffHandle: "bruno.costa", Date: time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), Status: domain.EventStatusCompleted},
	}

	performance := TeamPerformance(staff, classEvents, "2024-05")

	if len(performance) != 3 {
		t.Fatalf("rows = %d, want 3", len(performance))
	}
	byHandle := map[string]StaffPerformance{}
	for _, row := range performance {
		byHandle[row.Handle] = row
	}

	if row := byHandle["gabriella.souza"]; row.CompletedSessions != 2 || row.EstimatedEarnings != 120 {
		t.Errorf("gabriella = %+v, want 2 sessions / 120 earnings", row)
	}
	// Earnings use the first configured rate.
	if row := byHandle["bruno.costa"]; row.CompletedSessions != 1 || row.EstimatedEarnings != 80 {
		t.Errorf("bruno = %+v, want 1 session / 80 earnings", row)
	}
	if row := byHandle["new.hire"]; row.CompletedSessions != 0 || row.EstimatedEarnings != 0 {
		t.Errorf("new hire = %+v, want zero row", row)
	}
}
