package usecase

import (
	"reflect"
	"testing"
)

func TestNewKeywordSet(t *testing.T) {
	set := NewKeywordSet([]string{"fat", "Total Fat", "fat", "  ", "Eiweiß"})

	want := []string{"total fat", "eiweiss", "fat"}
	got := set.FindMatchedKeywords("Total Fat 3g, Eiweiß 2g, of which fat 1g")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindMatchedKeywords() = %q, want %q", got, want)
	}

	if n := set.CountMatches("fat fat FAT"); n != 1 {
		t.Errorf("CountMatches() = %d, want 1 for a duplicated keyword", n)
	}
}

func TestKeywordSetFindMatchedKeywords(t *testing.T) {
	set := NewKeywordSet([]string{"fat", "total fat", "protein", "salt"})

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "longest keyword wins on overlap",
			text: "Total Fat 9g",
			want: []string{"total fat"},
		},
		{
			name: "repeated keyword counts once",
			text: "Protein 3g protein 5g",
			want: []string{"protein"},
		},
		{
			name: "order of first appearance",
			text: "salt 1g, fat 2g, protein 3g",
			want: []string{"salt", "fat", "protein"},
		},
		{
			name: "whitespace runs inside a keyword",
			text: "TOTAL\n   FAT",
			want: []string{"total fat"},
		},
		{
			name: "no partial word matches",
			text: "fatigue and saltwater",
			want: nil,
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := set.FindMatchedKeywords(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("FindMatchedKeywords(%q) = %q, want %q", tc.text, got, tc.want)
			}
			if n := set.CountMatches(tc.text); n != len(tc.want) {
				t.Errorf("CountMatches(%q) = %d, want %d", tc.text, n, len(tc.want))
			}
		})
	}
}

func TestKeywordSetEmpty(t *testing.T) {
	set := NewKeywordSet(nil)
	if n := set.CountMatches("anything at all"); n != 0 {
		t.Errorf("CountMatches() = %d, want 0", n)
	}
}

func TestLexiconMultilingual(t *testing.T) {
	lexicon := NewLexicon()

	nutrition := []struct {
		language string
		text     string
	}{
		{"english", "Nutrition Facts\nCalories 230\nTotal Fat 9g"},
		{"german", "Nährwerte pro 100 g\nBrennwert 1046 kJ\nEiweiß 6,8 g"},
		{"french", "Valeurs nutritionnelles\nÉnergie 250 kcal\nProtéines 6 g"},
		{"italian", "Valori nutrizionali\nEnergia 250 kcal\nCarboidrati 28 g"},
		{"spanish", "Información nutricional\nValor energético\nProteínas 6 g"},
	}
	for _, tc := range nutrition {
		t.Run("nutrition "+tc.language, func(t *testing.T) {
			if n := lexicon.Nutrition.CountMatches(tc.text); n < 2 {
				t.Errorf("CountMatches() = %d, want at least 2 (%q)", n, lexicon.Nutrition.FindMatchedKeywords(tc.text))
			}
		})
	}

	t.Run("workout text", func(t *testing.T) {
		text := "12 min AMRAP\n10 Burpees\n15 Air Squats"
		if n := lexicon.Workout.CountMatches(text); n < 2 {
			t.Errorf("CountMatches() = %d, want at least 2", n)
		}
	})

	t.Run("unrelated text", func(t *testing.T) {
		text := "Dear diary, today the weather was lovely."
		if n := lexicon.Nutrition.CountMatches(text); n != 0 {
			t.Errorf("nutrition CountMatches() = %d, want 0", n)
		}
	})
}
