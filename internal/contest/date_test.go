package contest

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "01.09", want: "2026-09-01"},
		{input: "31.12", want: "2026-12-31"},
		{input: "29.02", wantErr: true}, // 2026 is not a leap year
		{input: "31.02", wantErr: true},
		{input: "00.10", wantErr: true},
		{input: "15.13", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeDate(tc.input, now)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("NormalizeDate(%q) = %q, expected error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeDate(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeDateLeapYear(t *testing.T) {
	now := time.Date(2028, time.January, 10, 0, 0, 0, 0, time.UTC)
	got, err := NormalizeDate("29.02", now)
	if err != nil {
		t.Fatalf("NormalizeDate leap year: %v", err)
	}
	if got != "2028-02-29" {
		t.Fatalf("NormalizeDate leap year = %q", got)
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	if got := FormatDate("2026-09-01"); got != "01.09.2026" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("FormatDate should pass through invalid input, got %q", got)
	}
}
