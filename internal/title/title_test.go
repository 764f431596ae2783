package title

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single letter v separator",
			input: "Kesavananda Bharati v. State of Kerala",
			want:  "Kesavananda Bharati vs State Of Kerala",
		},
		{
			name:  "vs with period and and ors",
			input: "A vs. B and Ors.",
			want:  "A vs B And Ors",
		},
		{
			name:  "versus spelled out",
			input: "Maneka Gandhi versus Union of India",
			want:  "Maneka Gandhi vs Union Of India",
		},
		{
			name:  "and others",
			input: "State of Punjab v. Baldev Singh and others",
			want:  "State Of Punjab vs Baldev Singh And Ors",
		},
		{
			name:  "no separator passes through title-cased",
			input: "in re berubari union",
			want:  "In Re Berubari Union",
		},
		{
			name:  "parenthetical aside stripped",
			input: "Shreya Singhal v. Union of India (Section 66A case)",
			want:  "Shreya Singhal vs Union Of India",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Olga Tellis vs Bombay Municipal Corporation  ",
			want:  "Olga Tellis vs Bombay Municipal Corporation",
		},
		{
			name:  "mixed case separator",
			input: "A VS. B",
			want:  "A vs B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_SingleConnector(t *testing.T) {
	got := Normalize("Kesavananda Bharati v. State of Kerala")

	if strings.Count(got, " vs ") != 1 {
		t.Errorf("Expected exactly one vs connector, got %q", got)
	}
	if strings.Contains(got, "v.") || strings.Contains(got, "V.") {
		t.Errorf("Residual v. separator in %q", got)
	}
	if strings.Contains(got, "vs vs") {
		t.Errorf("Duplicate vs connector in %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"Kesavananda Bharati v. State of Kerala",
		"A vs. B and Ors.",
		"Maneka Gandhi versus Union of India",
		"in re berubari union",
		"S.R. Bommai v. Union of India",
		"Indra Sawhney vs Union Of India And Ors",
	}

	for _, s := range samples {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}

func TestSlug_CharacterSet(t *testing.T) {
	samples := []string{
		"A.K. Gopalan vs State Of Madras",
		"M/s Hindustan Lever vs State",
		"Re: Article 370 (Reference)",
		"Vishaka & Ors vs State Of Rajasthan",
	}

	for _, s := range samples {
		slug := Slug(Normalize(s))
		for _, r := range slug {
			ok := unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-'
			if !ok {
				t.Errorf("Slug(%q) contains disallowed character %q in %q", s, r, slug)
			}
		}
	}
}

func TestSlug_Deterministic(t *testing.T) {
	in := "M/s Hindustan Lever vs State"
	if Slug(in) != Slug(in) {
		t.Error("Slug should be deterministic")
	}
	if got, want := Slug("A/B:C"), "A_B_C"; got != want {
		t.Errorf("Slug(\"A/B:C\") = %q, want %q", got, want)
	}
}
