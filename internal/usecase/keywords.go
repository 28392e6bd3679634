package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// KeywordSet is an immutable set of domain keywords compiled into a single
// matcher. It is safe for concurrent use.
type KeywordSet struct {
	pattern *regexp.Regexp
}

// NewKeywordSet compiles keywords into a matcher. Keywords are folded with
// FoldDiacritics so they compare against folded text. Longer keywords win
// when two overlap ("total fat" before "fat").
func NewKeywordSet(keywords []string) *KeywordSet {
	seen := make(map[string]bool, len(keywords))
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		f := strings.TrimSpace(FoldDiacritics(kw))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		folded = append(folded, f)
	}

	sort.SliceStable(folded, func(i, j int) bool {
		if len(folded[i]) != len(folded[j]) {
			return len(folded[i]) > len(folded[j])
		}
		return folded[i] < folded[j]
	})

	return &KeywordSet{pattern: compileAlternation(folded)}
}

// CountMatches returns the number of distinct keywords present in text
func (k *KeywordSet) CountMatches(text string) int {
	return len(k.FindMatchedKeywords(text))
}

// FindMatchedKeywords returns the distinct keywords present in text, in
// order of first appearance
func (k *KeywordSet) FindMatchedKeywords(text string) []string {
	if k.pattern == nil || text == "" {
		return nil
	}

	folded := FoldDiacritics(text)
	var matched []string
	seen := make(map[string]bool)
	for _, m := range k.pattern.FindAllStringSubmatch(folded, -1) {
		kw := strings.Join(strings.Fields(m[1]), " ")
		if !seen[kw] {
			seen[kw] = true
			matched = append(matched, kw)
		}
	}
	return matched
}

// compileAlternation builds `\b(kw1|kw2|...)\b`. Folded text is ASCII for
// every keyword we ship, so ASCII word boundaries are sufficient.
func compileAlternation(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return nil
	}
	parts := make([]string, len(keywords))
	for i, kw := range keywords {
		parts[i] = keywordPattern(kw)
	}
	return regexp.MustCompile(`\b(` + strings.Join(parts, "|") + `)\b`)
}

// keywordPattern quotes kw and lets any whitespace run match its spaces
func keywordPattern(kw string) string {
	words := strings.Fields(kw)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}
