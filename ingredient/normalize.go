// Package ingredient canonicalizes ingredient names and knows which
// ingredients can stand in for each other.
package ingredient

import (
	"regexp"
	"strings"
)

var (
	articles   = regexp.MustCompile(`\b(a|an|the)\b`)
	spaces     = regexp.MustCompile(`\s+`)
	separators = regexp.MustCompile(`[,\n;]+`)
)

// DefaultSynonyms maps regional or alternate names onto one canonical name.
var DefaultSynonyms = map[string]string{
	"bell pepper": "capsicum",
	"scallion":    "spring onion",
	"cilantro":    "coriander",
	"curd":        "yogurt",
	"corn flour":  "cornstarch",
	"chick pea":   "chickpeas",
	"kidney bean": "kidney beans",
}

type Normalizer struct {
	synonyms map[string]string
}

// NewNormalizer merges extra into DefaultSynonyms. Keys and values of extra
// are cleaned the same way input is, minus the synonym lookup.
func NewNormalizer(extra map[string]string) *Normalizer {
	syn := make(map[string]string, len(DefaultSynonyms)+len(extra))
	for k, v := range DefaultSynonyms {
		syn[k] = v
	}
	for k, v := range extra {
		k, v = clean(k), clean(v)
		if k == "" || v == "" || k == v {
			continue
		}
		syn[k] = v
	}
	return &Normalizer{synonyms: syn}
}

func clean(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = articles.ReplaceAllString(s, "")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// Normalize returns the canonical form of one ingredient, or "" when
// nothing is left after cleaning.
func (n *Normalizer) Normalize(s string) string {
	s = clean(s)
	if canonical, ok := n.synonyms[s]; ok {
		return canonical
	}
	return s
}

// Parse splits free text on commas, semicolons and newlines and returns the
// distinct normalized ingredients in first-seen order.
func (n *Normalizer) Parse(raw string) []string {
	return n.NormalizeAll(separators.Split(raw, -1))
}

// NormalizeAll normalizes each item as a whole, without splitting on
// separators, and returns the distinct non-empty results in first-seen order.
func (n *Normalizer) NormalizeAll(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		ing := n.Normalize(item)
		if ing == "" {
			continue
		}
		if _, ok := seen[ing]; ok {
			continue
		}
		seen[ing] = struct{}{}
		out = append(out, ing)
	}
	return out
}
