package domain

import (
	"fmt"
	"math"
)

// Plausibility limits applied to a parsed label (values are per 100 g)
const (
	// MaxMacroSumGrams is the largest believable protein+carbs+fat sum per 100 g
	MaxMacroSumGrams = 110.0
	// CalorieToleranceKcal is the allowed gap between stated and macro-derived calories
	CalorieToleranceKcal = 100.0
)

// ParsedNutrition holds nutrition facts read from a label, per 100 g.
// A nil field was not found.
type ParsedNutrition struct {
	Calories     *float64 `json:"calories"`
	Protein      *float64 `json:"protein"`
	Carbs        *float64 `json:"carbs"`
	Fat          *float64 `json:"fat"`
	Fiber        *float64 `json:"fiber"`
	Sugar        *float64 `json:"sugar"`
	SaturatedFat *float64 `json:"saturatedFat"`
	Sodium       *float64 `json:"sodium"` // mg
	RawText      string   `json:"rawText"`
	Confidence   float64  `json:"confidence"`
}

// IsValid reports whether all four core fields were found
func (p ParsedNutrition) IsValid() bool {
	return p.Calories != nil && p.Protein != nil && p.Carbs != nil && p.Fat != nil
}

// CoreFieldCount returns how many of calories, protein, carbs and fat are present
func (p ParsedNutrition) CoreFieldCount() int {
	return countPresent(p.Calories, p.Protein, p.Carbs, p.Fat)
}

// ExtendedFieldCount returns how many of fiber, sugar, saturated fat and sodium are present
func (p ParsedNutrition) ExtendedFieldCount() int {
	return countPresent(p.Fiber, p.Sugar, p.SaturatedFat, p.Sodium)
}

// MissingFields lists absent fields, core fields first
func (p ParsedNutrition) MissingFields() []string {
	var missing []string
	for _, f := range p.fields() {
		if f.value == nil {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Warnings returns advisory plausibility problems. They never invalidate the result.
func (p ParsedNutrition) Warnings() []string {
	var warnings []string

	for _, f := range p.fields() {
		if f.value != nil && *f.value < 0 {
			warnings = append(warnings, fmt.Sprintf("%s is negative (%.1f)", f.name, *f.value))
		}
	}

	if p.Protein != nil && p.Carbs != nil && p.Fat != nil {
		sum := *p.Protein + *p.Carbs + *p.Fat
		if sum > MaxMacroSumGrams {
			warnings = append(warnings, fmt.Sprintf("macro sum %.1f g exceeds %.0f g per 100 g", sum, MaxMacroSumGrams))
		}

		if p.Calories != nil {
			expected := 4*(*p.Protein) + 4*(*p.Carbs) + 9*(*p.Fat)
			if math.Abs(*p.Calories-expected) > CalorieToleranceKcal {
				warnings = append(warnings, fmt.Sprintf(
					"calories %.0f kcal differ from macro estimate %.0f kcal", *p.Calories, expected))
			}
		}
	}

	return warnings
}

type namedField struct {
	name  string
	value *float64
}

func (p ParsedNutrition) fields() []namedField {
	return []namedField{
		{"calories", p.Calories},
		{"protein", p.Protein},
		{"carbs", p.Carbs},
		{"fat", p.Fat},
		{"fiber", p.Fiber},
		{"sugar", p.Sugar},
		{"saturatedFat", p.SaturatedFat},
		{"sodium", p.Sodium},
	}
}

func countPresent(values ...*float64) int {
	n := 0
	for _, v := range values {
		if v != nil {
			n++
		}
	}
	return n
}

// NutritionParseResult is the outcome of parsing label text
type NutritionParseResult struct {
	Nutrition ParsedNutrition `json:"nutrition"`
	Valid     bool            `json:"valid"`
	Missing   []string        `json:"missingFields"`
	Warnings  []string        `json:"warnings"`
}

// NutritionSignal is the cheap live-preview result for nutrition capture
type NutritionSignal struct {
	HasBarcode bool `json:"hasBarcode"`
	HasLabel   bool `json:"hasLabel"`
}
