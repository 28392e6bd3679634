package usecase

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/macrolens/capture/internal/domain"
)

// MovementDefinition is a canonical movement and the names it is written as
type MovementDefinition struct {
	Name      string
	Aliases   []string
	Implement domain.WeightType
}

// MovementCatalog resolves written movement names to canonical movements.
// Build it once with NewMovementCatalog; it is read-only afterwards.
type MovementCatalog struct {
	definitions []MovementDefinition
	index       map[string]int // normalized name or alias -> definition
	mention     *regexp.Regexp
	minFuzzy    float64
}

// fuzzyMatchThreshold is the minimum Levenshtein similarity for a fuzzy hit
const fuzzyMatchThreshold = 0.85

// NewMovementCatalog builds the catalog from the built-in movement table
func NewMovementCatalog() *MovementCatalog {
	return newMovementCatalog(movementTable)
}

func newMovementCatalog(defs []MovementDefinition) *MovementCatalog {
	c := &MovementCatalog{
		definitions: defs,
		index:       make(map[string]int),
		minFuzzy:    fuzzyMatchThreshold,
	}

	for i, def := range defs {
		c.index[movementKey(def.Name)] = i
		for _, alias := range def.Aliases {
			c.index[movementKey(alias)] = i
		}
	}

	keys := make([]string, 0, len(c.index))
	for k := range c.index {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = regexp.QuoteMeta(k)
	}
	c.mention = regexp.MustCompile(`\b(` + strings.Join(parts, "|") + `)(?:es|s)?\b`)

	return c
}

// Lookup resolves a written movement name. It tries an exact match, then
// singular forms, then abbreviation expansion, then fuzzy matching.
func (c *MovementCatalog) Lookup(name string) (MovementDefinition, bool) {
	key := movementKey(name)
	if key == "" {
		return MovementDefinition{}, false
	}

	// 1. Exact match on name or alias
	if i, ok := c.index[key]; ok {
		return c.definitions[i], true
	}

	// 2. Singular forms
	for _, suffix := range []string{"es", "s"} {
		if trimmed := strings.TrimSuffix(key, suffix); trimmed != key {
			if i, ok := c.index[trimmed]; ok {
				return c.definitions[i], true
			}
		}
	}

	// 3. Abbreviation expansion
	if expanded := expandMovementAbbreviations(key); expanded != key {
		if i, ok := c.index[expanded]; ok {
			return c.definitions[i], true
		}
	}

	// 4. Fuzzy match, only for names long enough to avoid false positives
	if len(key) < 5 {
		return MovementDefinition{}, false
	}
	best, score := -1, 0.0
	for k, i := range c.index {
		s := similarityScore(key, k)
		if s > score || (s == score && best >= 0 && c.definitions[i].Name < c.definitions[best].Name) {
			best, score = i, s
		}
	}
	if best >= 0 && score >= c.minFuzzy {
		return c.definitions[best], true
	}

	return MovementDefinition{}, false
}

// FindMention returns the first known movement mentioned anywhere in line
func (c *MovementCatalog) FindMention(line string) (MovementDefinition, bool) {
	m := c.mention.FindStringSubmatch(movementKey(line))
	if m == nil {
		return MovementDefinition{}, false
	}
	i, ok := c.index[m[1]]
	if !ok {
		return MovementDefinition{}, false
	}
	return c.definitions[i], true
}

// movementKey lowercases, folds diacritics, turns hyphens and slashes into
// spaces and drops other punctuation
func movementKey(s string) string {
	s = FoldDiacritics(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '/' || r == '_' || unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// movementAbbreviations expands whiteboard shorthand word by word
var movementAbbreviations = map[string]string{
	"db":  "dumbbell",
	"bb":  "barbell",
	"kb":  "kettlebell",
	"ohs": "overhead squat",
	"ohp": "overhead press",
	"rdl": "romanian deadlift",
	"cal": "calorie",
	"ttb": "toes to bar",
}

func expandMovementAbbreviations(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if expanded, ok := movementAbbreviations[w]; ok {
			words[i] = expanded
		}
	}
	return strings.Join(words, " ")
}

// similarityScore is 1 - levenshtein(a, b) / max(len(a), len(b))
func similarityScore(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
