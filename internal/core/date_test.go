package core

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-03-14", "2025-03-14", true},
		{"2025-03-14T10:30:00Z", "2025-03-14", true},
		{"2025-03-14T23:30:00+02:00", "2025-03-14", true},
		{"14/03/2025", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.want {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		D Date  `json:"d"`
		P *Date `json:"p"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2025-01-31","p":null}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.D.Year() != 2025 || payload.D.Month() != 1 || payload.D.Day() != 31 || payload.P != nil {
		t.Fatalf("unexpected payload %+v", payload)
	}
	out, _ := json.Marshal(payload.D)
	if string(out) != `"2025-01-31"` {
		t.Fatalf("marshal = %s", out)
	}
	out, _ = json.Marshal(Date{})
	if string(out) != "null" {
		t.Fatalf("zero date should marshal as null, got %s", out)
	}
}

func TestMonthRange(t *testing.T) {
	cases := []struct {
		year, month int
		first, last string
	}{
		{2025, 1, "2025-01-01", "2025-01-31"},
		{2024, 2, "2024-02-01", "2024-02-29"},
		{2025, 12, "2025-12-01", "2025-12-31"},
	}
	for _, tc := range cases {
		first, last := MonthRange(tc.year, tc.month)
		if first.String() != tc.first || last.String() != tc.last {
			t.Errorf("MonthRange(%d,%d) = %s..%s", tc.year, tc.month, first, last)
		}
	}
}
