package ledger

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"1234.50", "1234.5", false},
		{"1 234,50", "1234.5", false},
		{"1\u00a0234,50", "1234.5", false},
		{" 42 ", "42", false},
		{"-17,25", "-17.25", false},
		{"", "", true},
		{"abc", "", true},
		{"12,34,56", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.err {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tt.in, err)
			}
			assertAmount(t, tt.in, got, tt.want)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"5", "5,00"},
		{"999.9", "999,90"},
		{"1234.5", "1 234,50"},
		{"-1234.5", "-1 234,50"},
		{"1234567.891", "1 234 567,89"},
		{"100000", "100 000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatAmount(dec(t, tt.in)); got != tt.want {
				t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	for in, want := range map[string]bool{
		"0": true, "0.009": true, "-0.009": true, "0.01": false, "-0.01": false, "12": false,
	} {
		if got := IsZero(dec(t, in)); got != want {
			t.Errorf("IsZero(%s) = %v, want %v", in, got, want)
		}
	}
}
