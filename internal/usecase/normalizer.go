package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizedText holds the views of one recognized text used by the extractors
type NormalizedText struct {
	// Display keeps the original casing and diacritics
	Display string
	// Folded is lowercased and diacritic-folded, with line breaks kept
	Folded string
	// Flat is Folded with line breaks replaced by spaces
	Flat string
	// Lines are the non-empty lines of Folded
	Lines []string
}

// Compiled regex patterns for text normalization
var (
	// Inserts a space between a number and a unit token, e.g. "100kcal" -> "100 kcal"
	unitSpacingPattern = regexp.MustCompile(`(?i)(\d)(kcal|kj|mg|g)\b`)

	// Runs of horizontal whitespace
	horizontalSpacePattern = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)

	// Three or more consecutive newlines
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

// germanFolds maps letters whose folded form is two ASCII letters
var germanFolds = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"Ä", "ae", "Ö", "oe", "Ü", "ue", "ẞ", "ss",
)

// Normalize canonicalizes recognized text. It never fails and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Step 1: Unify line endings and tabs
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// Step 2: Fix letters misread as digits between digits
	s = fixDigitConfusions(s)

	// Step 3: Decimal commas between digits become dots
	s = replaceDecimalCommas(s)

	// Step 4: Separate numbers from unit tokens
	s = unitSpacingPattern.ReplaceAllString(s, "$1 $2")

	// Step 5: Collapse whitespace and trim each line
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpacePattern.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")

	// Step 6: Collapse runs of blank lines
	s = blankLinesPattern.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// FoldDiacritics lowercases text and folds diacritics for keyword matching,
// e.g. "Gesättigte Fettsäuren" -> "gesaettigte fettsaeuren".
func FoldDiacritics(text string) string {
	s := germanFolds.Replace(text)
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(folder, s); err == nil {
		s = folded
	}
	return strings.ToLower(s)
}

// Prepare normalizes raw text and builds the flat and per-line views
func Prepare(raw string) NormalizedText {
	display := Normalize(raw)
	folded := FoldDiacritics(display)

	var lines []string
	for _, line := range strings.Split(folded, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return NormalizedText{
		Display: display,
		Folded:  folded,
		Flat:    strings.Join(lines, " "),
		Lines:   lines,
	}
}

// fixDigitConfusions turns o/O into 0 and l/I into 1 when flanked by digits
func fixDigitConfusions(s string) string {
	r := []rune(s)
	changed := false
	for i := 1; i < len(r)-1; i++ {
		if !isDigit(r[i-1]) || !isDigit(r[i+1]) {
			continue
		}
		switch r[i] {
		case 'o', 'O':
			r[i] = '0'
			changed = true
		case 'l', 'I':
			r[i] = '1'
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(r)
}

// replaceDecimalCommas turns "12,5" into "12.5"
func replaceDecimalCommas(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	r := []rune(s)
	for i := 1; i < len(r)-1; i++ {
		if r[i] == ',' && isDigit(r[i-1]) && isDigit(r[i+1]) {
			r[i] = '.'
		}
	}
	return string(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
