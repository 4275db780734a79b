package types

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected Date
	}{
		{"plain", "2023-03-05", Date{Year: 2023, Month: 3, Day: 5}},
		{"whitespace", "  2023-01-01\n", Date{Year: 2023, Month: 1, Day: 1}},
		{"leap day", "2024-02-29", Date{Year: 2024, Month: 2, Day: 29}},
		{"year end", "1999-12-31", Date{Year: 1999, Month: 12, Day: 31}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) returned error: %v", tc.input, err)
			}
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"not-a-date",
		"2023-13-01",
		"2023-00-10",
		"2023-02-29",
		"2023-04-31",
		"2023-3-5",
		"23-03-05",
		"2023/03/05",
		"2023-03-05T10:00:00Z",
		"2023-03--5",
		"2023-+3-05",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if got, err := ParseDate(input); err == nil {
				t.Errorf("Expected error for %q, got %v", input, got)
			}
		})
	}
}

func TestDateValid(t *testing.T) {
	cases := []struct {
		date     Date
		expected bool
	}{
		{Date{Year: 2023, Month: 1, Day: 31}, true},
		{Date{Year: 2023, Month: 2, Day: 28}, true},
		{Date{Year: 2023, Month: 2, Day: 29}, false},
		{Date{Year: 2024, Month: 2, Day: 29}, true},
		{Date{Year: 1900, Month: 2, Day: 29}, false},
		{Date{Year: 2000, Month: 2, Day: 29}, true},
		{Date{Year: 2023, Month: 4, Day: 31}, false},
		{Date{Year: 2023, Month: 0, Day: 10}, false},
		{Date{Year: 2023, Month: 13, Day: 1}, false},
		{Date{Year: 2023, Month: 6, Day: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.date.String(), func(t *testing.T) {
			if got := tc.date.Valid(); got != tc.expected {
				t.Errorf("Expected Valid() == %v for %v", tc.expected, tc.date)
			}
		})
	}
}

func TestDateTimeRoundtrip(t *testing.T) {
	original := Date{Year: 2023, Month: 3, Day: 5}
	restored := FromTime(original.ToTime())
	if !restored.Equal(original) {
		t.Errorf("Expected %v, got %v", original, restored)
	}
	if original.ToTime().Location() != time.UTC {
		t.Error("Expected ToTime to use UTC")
	}
}

func TestDateString(t *testing.T) {
	date := Date{Year: 812, Month: 7, Day: 4}
	if got := date.String(); got != "0812-07-04" {
		t.Errorf("Expected %q, got %q", "0812-07-04", got)
	}
}
