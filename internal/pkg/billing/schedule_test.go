package billing

import (
	"testing"
	"time"
)

func TestNormalizeFrequency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "monthly", want: "monthly"},
		{in: "QUARTERLY", want: "quarterly"},
		{in: "semi_annual", want: "semi_annual"},
		{in: "semi-annual", want: "semi_annual"},
		{in: "semiannual", want: "semi_annual"},
		{in: "annual", want: "annual"},
		{in: "weekly", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := normalizeFrequency(tt.in); got != tt.want {
			t.Fatalf("normalizeFrequency(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAdvanceBillingDate(t *testing.T) {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{frequency: "monthly", want: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{frequency: "quarterly", want: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)},
		{frequency: "semi_annual", want: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)},
		{frequency: "annual", want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := advanceBillingDate(from, tt.frequency); !got.Equal(tt.want) {
			t.Fatalf("advanceBillingDate(%s, %q) = %s, want %s", from, tt.frequency, got, tt.want)
		}
	}
}

func TestAdvanceBillingDateFromPrevious(t *testing.T) {
	// The advance is computed from the previous billing date, so repeated
	// renewals land on the same day of month regardless of when they ran.
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		date = advanceBillingDate(date, "monthly")
	}
	want := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("after 6 monthly advances got %s, want %s", date, want)
	}
}
