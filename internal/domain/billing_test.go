package domain

import (
	"testing"
	"time"
)

func TestPeriod(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2024, time.January, "2024-01"},
		{2024, time.May, "2024-05"},
		{2024, time.October, "2024-10"},
		{2024, time.December, "2024-12"},
		{999, time.March, "0999-03"},
	}
	for _, tc := range tests {
		if got := Period(tc.year, tc.month); got != tc.want {
			t.Errorf("Period(%d, %v) = %q, want %q", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestPeriodMatches(t *testing.T) {
	tests := []struct {
		record string
		period string
		want   bool
	}{
		{"2024-05", "2024-05", true},
		{"2024-05-15", "2024-05", true},
		{"2024-04", "2024-05", false},
		{"2023-05", "2024-05", false},
		{"", "2024-05", false},
	}
	for _, tc := range tests {
		if got := PeriodMatches(tc.record, tc.period); got != tc.want {
			t.Errorf("PeriodMatches(%q, %q) = %v, want %v", tc.record, tc.period, got, tc.want)
		}
	}
}
