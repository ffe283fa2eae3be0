package domain

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"city and state", "New York, NY", true},
		{"street address", "1901 W Madison St, Phoenix, AZ 85009", true},
		{"hyphen and period", "St. Louis-Park", true},
		{"minimum length", "abc", true},
		{"maximum length", strings.Repeat("a", 200), true},
		{"empty", "", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 201), false},
		{"script tag", "<script>alert(1)</script>", false},
		{"sql injection", "'; DROP TABLE users; --", false},
		{"path traversal", "../../etc/passwd", false},
		{"command substitution", "$(rm -rf /)", false},
		{"nosql operator", `{"$gt": ""}`, false},
		{"data url", "data:text/html,<script>", false},
		{"protocol relative url", "//evil.com/hack.js", false},
		{"img tag", "<img src=x onerror=alert(1)>", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateAddress(tc.in); got != tc.want {
				t.Fatalf("ValidateAddress(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{90, 0, true},
		{-90, 0, true},
		{91, 0, false},
		{-91, 0, false},
		{0, 180, true},
		{0, -180, true},
		{0, 181, false},
		{0, -181, false},
		{40.7128, -74.0060, true},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}

	for _, tc := range cases {
		if got := ValidateCoordinates(tc.lat, tc.lon); got != tc.want {
			t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tc.lat, tc.lon, got, tc.want)
		}
	}
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("40.7127281", " -74.0060152 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Lat != 40.7127281 || c.Lon != -74.0060152 {
		t.Fatalf("ParseCoordinates = %+v", c)
	}

	bad := [][2]string{
		{"north", "0"},
		{"0", ""},
		{"95.1", "10"},
		{"10", "-200"},
		{"NaN", "0"},
	}
	for _, in := range bad {
		if _, err := ParseCoordinates(in[0], in[1]); !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("ParseCoordinates(%q, %q) err = %v, want ErrInvalidCoordinates", in[0], in[1], err)
		}
	}
}
