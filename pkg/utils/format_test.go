package utils

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1234.56, "1,234.56"},
		{1234567.8, "1,234,567.80"},
		{-42.1, "-42.10"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(2.5); got != "+2.50%" {
		t.Errorf("FormatPercent(2.5) = %q", got)
	}
	if got := FormatPercent(-1.25); got != "-1.25%" {
		t.Errorf("FormatPercent(-1.25) = %q", got)
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{500, "500"},
		{12_300, "12.3K"},
		{4_500_000, "4.5M"},
		{1_200_000_000, "1.2B"},
	}
	for _, tt := range tests {
		if got := FormatVolume(tt.in); got != tt.want {
			t.Errorf("FormatVolume(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
