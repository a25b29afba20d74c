package slug_test

import (
	"strings"
	"testing"

	"workshoppass/internal/domain/slug"
)

// TestDerive tests slug derivation from display names.
func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple two words", in: "Rahul Sharma", want: "rahul-sharma"},
		{name: "trailing punctuation", in: "Priya  Patel!!", want: "priya-patel"},
		{name: "initials with periods", in: "R.  J Prabhas", want: "r-j-prabhas"},
		{name: "single initial", in: "A. Rupa", want: "a-rupa"},
		{name: "apostrophe dropped without break", in: "O'Brien", want: "obrien"},
		{name: "existing hyphens kept", in: "Mary-Jane Watson", want: "mary-jane-watson"},
		{name: "leading and trailing space", in: "  Gopal Reddy  ", want: "gopal-reddy"},
		{name: "digits preserved", in: "Agent 47", want: "agent-47"},
		{name: "empty input", in: "", want: ""},
		{name: "all punctuation", in: "!!!", want: ""},
		{name: "only spaces", in: "   ", want: ""},
		{name: "non-ascii letters dropped", in: "José Núñez", want: "jos-nez"},
		{name: "tab and newline as breaks", in: "Ram\tcharan\nTej", want: "ram-charan-tej"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slug.Derive(tt.in)
			if got != tt.want {
				t.Errorf("Derive(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestDeriveShape checks the structural invariant for a spread of inputs.
func TestDeriveShape(t *testing.T) {
	inputs := []string{
		"Rahul Sharma", "Priya  Patel!!", "--weird--input--", "...", "a",
		"D'Angelo von Württemberg III", "  mixed CASE  Name ", "123 456",
	}
	for _, in := range inputs {
		got := slug.Derive(in)
		if got == "" {
			continue
		}
		if got != strings.ToLower(got) {
			t.Errorf("Derive(%q) = %q is not lowercase", in, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Derive(%q) = %q has a leading or trailing hyphen", in, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Derive(%q) = %q has consecutive hyphens", in, got)
		}
		for _, r := range got {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				t.Errorf("Derive(%q) = %q contains %q", in, got, r)
			}
		}
	}
}

// TestToDisplayName tests the lossy inverse.
func TestToDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two tokens", in: "rahul-sharma", want: "Rahul Sharma"},
		{name: "single token", in: "priya", want: "Priya"},
		{name: "empty", in: "", want: ""},
		{name: "tolerates stray hyphens", in: "-a--b-", want: "A B"},
		{name: "digit token", in: "agent-47", want: "Agent 47"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slug.ToDisplayName(tt.in)
			if got != tt.want {
				t.Errorf("ToDisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestRoundTripIdempotent verifies applying the inverse twice is stable even
// when the original name cannot be recovered.
func TestRoundTripIdempotent(t *testing.T) {
	names := []string{"Rahul Sharma", "O'Brien McDonald", "José Núñez", "R.  J Prabhas"}
	for _, n := range names {
		once := slug.ToDisplayName(slug.Derive(n))
		twice := slug.ToDisplayName(slug.Derive(once))
		if once != twice {
			t.Errorf("round trip not idempotent for %q: %q then %q", n, once, twice)
		}
	}
}

// TestValid tests slug well-formedness checks.
func TestValid(t *testing.T) {
	valid := []string{"rahul-sharma", "a", "x-1-y"}
	invalid := []string{"", "-a", "a-", "a--b", "Rahul", "a b", "a_b"}
	for _, s := range valid {
		if !slug.Valid(s) {
			t.Errorf("Valid(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if slug.Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}
