package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"19,90", 1990, true},
		{"19.90", 1990, true},
		{"10", 1000, true},
		{"0,5", 50, true},
		{",5", 50, true},
		{"12.345", 1235, true}, // half-up rounding
		{"12.346", 1235, true},
		{"12.344", 1234, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12,34,56", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"0", 0, false},
		{"0,00", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok && (err != nil || got != tc.cents) {
			t.Fatalf("ParseDecimalToCents(%q) = %d, %v, want %d", tc.in, got, err, tc.cents)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseDecimalToCents(%q) expected error, got %d", tc.in, got)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{2550, "25,50"},
		{1990, "19,90"},
		{5, "0,05"},
		{100, "1,00"},
		{-250, "-2,50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}
