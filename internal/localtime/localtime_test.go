package localtime

import (
	"testing"
	"time"
)

func TestToLocalOffset(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
		wantErr  bool
	}{
		{
			name:     "UTC afternoon",
			input:    time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC),
			expected: "2024-06-10 18:30:00",
		},
		{
			name:     "Crosses local midnight",
			input:    time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC),
			expected: "2024-06-11 01:30:00",
		},
		{
			name:     "Zero-padded fields",
			input:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			expected: "2024-01-02 08:34:05",
		},
		{
			name:    "Zero instant rejected",
			input:   time.Time{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToLocalOffset(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToLocalOffset() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ToLocalOffset() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestToLocalOffsetMonotonic(t *testing.T) {
	base := time.Date(2024, 6, 9, 18, 0, 0, 0, time.UTC)

	prev, err := ToLocalOffset(base)
	if err != nil {
		t.Fatalf("ToLocalOffset() error = %v", err)
	}

	// Step across minutes, hours and a midnight boundary.
	for i := 1; i <= 60; i++ {
		next, err := ToLocalOffset(base.Add(time.Duration(i) * 37 * time.Minute))
		if err != nil {
			t.Fatalf("ToLocalOffset() error = %v", err)
		}
		if !(prev < next) {
			t.Fatalf("ordering violated: %q should sort before %q", prev, next)
		}
		prev = next
	}
}

func TestWindow(t *testing.T) {
	// 2024-06-10T15:00:00Z is 2024-06-10 20:30 local.
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	start, end := Window(now)
	if start != "2024-06-09 19:30:00" {
		t.Errorf("window start = %q, want %q", start, "2024-06-09 19:30:00")
	}
	if end != "2024-06-10 19:00:00" {
		t.Errorf("window end = %q, want %q", end, "2024-06-10 19:00:00")
	}
}

func TestWindowAcrossMonthBoundary(t *testing.T) {
	// 2024-07-01T02:00:00Z is 2024-07-01 07:30 local; yesterday is in June.
	now := time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC)

	start, end := Window(now)
	if start != "2024-06-30 19:30:00" {
		t.Errorf("window start = %q, want %q", start, "2024-06-30 19:30:00")
	}
	if end != "2024-07-01 19:00:00" {
		t.Errorf("window end = %q, want %q", end, "2024-07-01 19:00:00")
	}
}

func TestDay(t *testing.T) {
	// 2024-06-10T19:30:00Z is already 2024-06-11 local.
	now := time.Date(2024, 6, 10, 19, 30, 0, 0, time.UTC)
	if got := Day(now); got != "2024-06-11" {
		t.Errorf("Day() = %q, want %q", got, "2024-06-11")
	}
}
