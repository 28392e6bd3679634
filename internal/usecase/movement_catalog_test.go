package usecase

import (
	"testing"

	"github.com/macrolens/capture/internal/domain"
)

func TestMovementCatalogLookup(t *testing.T) {
	catalog := NewMovementCatalog()

	testCases := []struct {
		name      string
		input     string
		wantName  string
		wantFound bool
	}{
		{name: "exact canonical name", input: "Thrusters", wantName: "Thrusters", wantFound: true},
		{name: "alias", input: "T2B", wantName: "Toes-to-Bar", wantFound: true},
		{name: "hyphen and case folding", input: "PULL-UPS", wantName: "Pull-ups", wantFound: true},
		{name: "singular alias", input: "box jump", wantName: "Box Jumps", wantFound: true},
		{name: "singular form", input: "handstand walks", wantName: "Handstand Walk", wantFound: true},
		{name: "es plural", input: "shoulder presses", wantName: "Shoulder Press", wantFound: true},
		{name: "abbreviation expansion", input: "bb thrusters", wantName: "Thrusters", wantFound: true},
		{name: "fuzzy match", input: "thrusterz", wantName: "Thrusters", wantFound: true},
		{name: "fuzzy typo", input: "burpeez", wantName: "Burpees", wantFound: true},
		{name: "short names are not fuzzy matched", input: "bxj", wantFound: false},
		{name: "unknown movement", input: "zorbflips", wantFound: false},
		{name: "empty", input: "  ", wantFound: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def, ok := catalog.Lookup(tc.input)
			if ok != tc.wantFound {
				t.Fatalf("Lookup(%q) found = %v, want %v (got %q)", tc.input, ok, tc.wantFound, def.Name)
			}
			if ok && def.Name != tc.wantName {
				t.Errorf("Lookup(%q) = %q, want %q", tc.input, def.Name, tc.wantName)
			}
		})
	}
}

func TestMovementCatalogImplement(t *testing.T) {
	catalog := NewMovementCatalog()

	testCases := []struct {
		input string
		want  domain.WeightType
	}{
		{"thrusters", domain.WeightBarbell},
		{"db snatch", domain.WeightDumbbell},
		{"kbs", domain.WeightKettlebell},
		{"burpees", domain.WeightBodyweight},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			def, ok := catalog.Lookup(tc.input)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tc.input)
			}
			if def.Implement != tc.want {
				t.Errorf("Implement = %q, want %q", def.Implement, tc.want)
			}
		})
	}
}

func TestMovementCatalogFindMention(t *testing.T) {
	catalog := NewMovementCatalog()

	testCases := []struct {
		line      string
		wantName  string
		wantFound bool
	}{
		{line: "then max burpee box jump overs", wantName: "Burpee Box Jump Overs", wantFound: true},
		{line: "row 500m easy", wantName: "Row", wantFound: true},
		{line: "a few hang power cleans", wantName: "Hang Power Cleans", wantFound: true},
		{line: "rest and stretch", wantFound: false},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			def, ok := catalog.FindMention(tc.line)
			if ok != tc.wantFound {
				t.Fatalf("FindMention(%q) found = %v, want %v (got %q)", tc.line, ok, tc.wantFound, def.Name)
			}
			if ok && def.Name != tc.wantName {
				t.Errorf("FindMention(%q) = %q, want %q", tc.line, def.Name, tc.wantName)
			}
		})
	}
}

func TestMovementKey(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"Pull-Ups", "pull ups"},
		{"Clean & Jerk", "clean jerk"},
		{"  Wall   Ball/Shots ", "wall ball shots"},
		{"Kniebeugen ü", "kniebeugen ue"},
	}

	for _, tc := range testCases {
		if got := movementKey(tc.input); got != tc.want {
			t.Errorf("movementKey(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSimilarityScore(t *testing.T) {
	testCases := []struct {
		a, b string
		want float64
	}{
		{"", "", 1.0},
		{"thrusters", "thrusters", 1.0},
		{"abc", "", 0.0},
		{"kitten", "sitting", 1 - 3.0/7.0},
	}

	for _, tc := range testCases {
		got := similarityScore(tc.a, tc.b)
		if diff := got - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("similarityScore(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
