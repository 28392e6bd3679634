package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/macrolens/capture/internal/domain"
)

// FieldSpec describes how one numeric field is found on a label
type FieldSpec struct {
	Keywords    []string
	Unit        string // expected unit token, empty for none
	RequireUnit bool   // reject numbers without the unit
	Exclude     []string
	Min         float64
	Max         float64
}

// fieldMatcher is a compiled FieldSpec
type fieldMatcher struct {
	spec    FieldSpec
	windows []*regexp.Regexp
	keyword *regexp.Regexp
	exclude *regexp.Regexp
}

const numberPattern = `(\d+(?:\.\d+)?)`

// Compiled regex patterns for calorie and line extraction
var (
	// "1046 kJ / 250 kcal", "1046 kJ (250 kcal)"
	kjThenKcalPattern = regexp.MustCompile(numberPattern + `\s*kj\s*[/|(),]?\s*` + numberPattern + `\s*kcal\b`)

	// "250 kcal / 1046 kJ"
	kcalThenKjPattern = regexp.MustCompile(numberPattern + `\s*kcal\s*[/|(),]?\s*` + numberPattern + `\s*kj\b`)

	// "250 kcal" with no keyword
	bareKcalPattern = regexp.MustCompile(numberPattern + `\s*kcal\b`)

	// US labels: "Calories 230"
	usCaloriesPattern = regexp.MustCompile(`\bcalories\s*:?\s*` + numberPattern + `\b`)

	// "960 kJ"
	bareKjPattern = regexp.MustCompile(numberPattern + `\s*kj\b`)

	// A number and the unit token following it, if any
	numberWithUnitPattern = regexp.MustCompile(numberPattern + `\s*(%|(?:kcal|kj|mg|g)\b)?`)

	lastDigitPattern = regexp.MustCompile(`\d[^\d]*$`)
)

const (
	// kJ per kcal
	kilojoulesPerKcal = 4.184
	// Salt is roughly 2.5x the sodium mass. This is the label-industry
	// approximation, not a molar conversion.
	saltToSodiumFactor = 2.5
)

func newFieldMatcher(spec FieldSpec) *fieldMatcher {
	kw := keywordAlternation(spec.Keywords)
	unit := ""
	if spec.Unit != "" {
		unit = `\s*` + regexp.QuoteMeta(spec.Unit) + `\b`
	}

	m := &fieldMatcher{
		spec:    spec,
		keyword: regexp.MustCompile(`\b(?:` + kw + `)\b`),
		windows: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:` + kw + `)\b\s*:?\s*` + numberPattern + unit),
			regexp.MustCompile(`\b(?:` + kw + `)\b[^0-9]{0,15}?` + numberPattern + unit),
			regexp.MustCompile(`\b(?:` + kw + `)\b[^0-9]{0,25}?` + numberPattern + unit),
		},
	}
	if len(spec.Exclude) > 0 {
		m.exclude = regexp.MustCompile(`\b(?:` + keywordAlternation(spec.Exclude) + `)`)
	}
	return m
}

// extract runs the window tiers over the flat text, then falls back to the
// line scan. Out-of-range candidates are skipped.
func (m *fieldMatcher) extract(text NormalizedText) *float64 {
	for _, window := range m.windows {
		if v, ok := m.searchFlat(window, text.Flat); ok {
			return &v
		}
	}
	if v, ok := m.searchLines(text.Lines); ok {
		return &v
	}
	return nil
}

func (m *fieldMatcher) searchFlat(window *regexp.Regexp, flat string) (float64, bool) {
	for _, loc := range window.FindAllStringSubmatchIndex(flat, -1) {
		// Context is the text since the previous number plus the gap
		// between keyword and value.
		context := flat[:loc[0]]
		if last := lastDigitPattern.FindStringIndex(context); last != nil {
			context = context[last[0]+1:]
		}
		context += flat[loc[0]:loc[2]]
		if m.excluded(context) {
			continue
		}

		if v, ok := m.accept(flat[loc[2]:loc[3]]); ok {
			return v, true
		}
	}
	return 0, false
}

func (m *fieldMatcher) searchLines(lines []string) (float64, bool) {
	for i, line := range lines {
		if m.excluded(line) {
			continue
		}
		loc := m.keyword.FindStringIndex(line)
		if loc == nil {
			continue
		}

		// Same line, after the keyword
		if v, ok := m.firstNumber(line[loc[1]:]); ok {
			return v, true
		}

		// Value printed on the following line
		if i+1 < len(lines) && !m.excluded(lines[i+1]) {
			if v, ok := m.firstNumber(lines[i+1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

// firstNumber returns the first in-range number carrying an acceptable unit
func (m *fieldMatcher) firstNumber(s string) (float64, bool) {
	for _, match := range numberWithUnitPattern.FindAllStringSubmatch(s, -1) {
		unit := match[2]
		switch {
		case unit == m.spec.Unit && unit != "":
		case unit == "" && !m.spec.RequireUnit:
		default:
			continue
		}
		if v, ok := m.accept(match[1]); ok {
			return v, true
		}
	}
	return 0, false
}

func (m *fieldMatcher) accept(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	if v < m.spec.Min || v > m.spec.Max {
		return 0, false
	}
	return v, true
}

func (m *fieldMatcher) excluded(s string) bool {
	return m.exclude != nil && m.exclude.MatchString(s)
}

func keywordAlternation(keywords []string) string {
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if f := strings.TrimSpace(FoldDiacritics(kw)); f != "" {
			parts = append(parts, keywordPattern(f))
		}
	}
	return strings.Join(parts, "|")
}

// NutritionExtractor reads nutrition facts from label text. It is
// read-only after construction and safe for concurrent use.
type NutritionExtractor struct {
	caloriesKcal *fieldMatcher
	protein      *fieldMatcher
	carbs        *fieldMatcher
	fat          *fieldMatcher
	fiber        *fieldMatcher
	sugar        *fieldMatcher
	saturatedFat *fieldMatcher
	sodiumMg     *fieldMatcher
	sodiumG      *fieldMatcher
	salt         *fieldMatcher

	calorieMin float64
	calorieMax float64
	sodiumMax  float64
}

// NewNutritionExtractor compiles the built-in field specs
func NewNutritionExtractor() *NutritionExtractor {
	return &NutritionExtractor{
		caloriesKcal: newFieldMatcher(caloriesSpec),
		protein:      newFieldMatcher(proteinSpec),
		carbs:        newFieldMatcher(carbsSpec),
		fat:          newFieldMatcher(fatSpec),
		fiber:        newFieldMatcher(fiberSpec),
		sugar:        newFieldMatcher(sugarSpec),
		saturatedFat: newFieldMatcher(saturatedFatSpec),
		sodiumMg:     newFieldMatcher(sodiumMgSpec),
		sodiumG:      newFieldMatcher(sodiumGSpec),
		salt:         newFieldMatcher(saltSpec),
		calorieMin:   caloriesSpec.Min,
		calorieMax:   caloriesSpec.Max,
		sodiumMax:    sodiumMgSpec.Max,
	}
}

// Parse extracts every field it can find. Missing fields stay nil.
func (e *NutritionExtractor) Parse(raw string) domain.ParsedNutrition {
	text := Prepare(raw)

	p := domain.ParsedNutrition{
		Calories:     e.extractCalories(text),
		Protein:      e.protein.extract(text),
		Carbs:        e.carbs.extract(text),
		Fat:          e.fat.extract(text),
		Fiber:        e.fiber.extract(text),
		Sugar:        e.sugar.extract(text),
		SaturatedFat: e.saturatedFat.extract(text),
		Sodium:       e.extractSodium(text),
		RawText:      text.Display,
	}
	p.Confidence = NutritionConfidence(p)

	return p
}

// NutritionConfidence is 0.2 per core field plus 0.05 per extended field
func NutritionConfidence(p domain.ParsedNutrition) float64 {
	return clamp01(0.2*float64(p.CoreFieldCount()) + 0.05*float64(p.ExtendedFieldCount()))
}

// extractCalories tries, in order: a kJ/kcal pair, keyword + kcal, a bare
// kcal value, the US "Calories NNN" form, and finally kJ converted to kcal.
func (e *NutritionExtractor) extractCalories(text NormalizedText) *float64 {
	flat := text.Flat

	if m := kjThenKcalPattern.FindStringSubmatch(flat); m != nil {
		if v, ok := e.calorieInRange(m[2]); ok {
			return &v
		}
	}
	if m := kcalThenKjPattern.FindStringSubmatch(flat); m != nil {
		if v, ok := e.calorieInRange(m[1]); ok {
			return &v
		}
	}

	if v := e.caloriesKcal.extract(text); v != nil {
		return v
	}

	for _, m := range bareKcalPattern.FindAllStringSubmatch(flat, -1) {
		if v, ok := e.calorieInRange(m[1]); ok {
			return &v
		}
	}

	for _, m := range usCaloriesPattern.FindAllStringSubmatch(flat, -1) {
		if v, ok := e.calorieInRange(m[1]); ok {
			return &v
		}
	}

	for _, m := range bareKjPattern.FindAllStringSubmatch(flat, -1) {
		kj, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		kcal := math.Round(kj/kilojoulesPerKcal*10) / 10
		if kcal >= e.calorieMin && kcal <= e.calorieMax {
			return &kcal
		}
	}

	return nil
}

func (e *NutritionExtractor) calorieInRange(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < e.calorieMin || v > e.calorieMax {
		return 0, false
	}
	return v, true
}

// extractSodium returns sodium in mg from a mg value, a g value, or salt
func (e *NutritionExtractor) extractSodium(text NormalizedText) *float64 {
	if v := e.sodiumMg.extract(text); v != nil {
		return v
	}

	if v := e.sodiumG.extract(text); v != nil {
		mg := math.Round(*v * 1000)
		if mg <= e.sodiumMax {
			return &mg
		}
	}

	if v := e.salt.extract(text); v != nil {
		mg := math.Round(*v / saltToSodiumFactor * 1000)
		if mg <= e.sodiumMax {
			return &mg
		}
	}

	return nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
