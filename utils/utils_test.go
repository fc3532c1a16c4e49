package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.com", "jasith.balor@gmail.com", " padded@example.org "}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}

	invalid := []string{"", "plain", "a@b", "a b@c.com", "@no-local.com", "no-at.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		1.005:     1.0, // float64 stores 1.005 slightly below the midpoint
		2.675:     2.67,
		150.0:     150.0,
		0.1 + 0.2: 0.3,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}
