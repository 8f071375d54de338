package recommend

import (
	"sort"

	"flavorgraph/ingredient"
	"flavorgraph/models"

	"github.com/pkg/errors"
)

var ErrInvalidSort = errors.New("sort_by must be matched_then_missing or ratio")

type SortBy string

const (
	SortMatchedThenMissing SortBy = "matched_then_missing"
	SortRatio              SortBy = "ratio"
)

// ParseSortBy maps "" to the default order.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(s) {
	case "", SortMatchedThenMissing:
		return SortMatchedThenMissing, nil
	case SortRatio:
		return SortRatio, nil
	}
	return "", errors.Wrapf(ErrInvalidSort, "got %q", s)
}

// Suggest returns the gap analysis of every recipe sharing at least minMatch
// ingredients with available. Ties keep recipe order. subs may be nil.
func (fg *Graph) Suggest(available []string, minMatch int, sortBy SortBy, subs ingredient.Substitutions) []models.Suggestion {
	avail := make(map[string]struct{}, len(available))
	for _, a := range available {
		avail[a] = struct{}{}
	}

	out := make([]models.Suggestion, 0)
	for _, i := range fg.candidates(available, minMatch) {
		entry := fg.recipes[i]
		matched := make([]string, 0, len(entry.sorted))
		missing := make([]string, 0, len(entry.sorted))
		for _, ing := range entry.sorted {
			if _, ok := avail[ing]; ok {
				matched = append(matched, ing)
			} else {
				missing = append(missing, ing)
			}
		}
		if len(matched) < minMatch {
			continue
		}
		out = append(out, models.Suggestion{
			RecipeID:      entry.recipe.ID,
			Recipe:        entry.recipe.Name,
			Matched:       matched,
			Missing:       missing,
			MatchedCount:  len(matched),
			MissingCount:  len(missing),
			MatchRatio:    float64(len(matched)) / float64(len(entry.sorted)),
			Substitutions: subs.For(missing),
		})
	}

	sort.SliceStable(out, less(out, sortBy))
	return out
}

// candidates returns recipe indexes in order. With minMatch >= 1 only
// recipes adjacent to an available ingredient can qualify.
func (fg *Graph) candidates(available []string, minMatch int) []int {
	if minMatch <= 0 {
		all := make([]int, len(fg.recipes))
		for i := range all {
			all[i] = i
		}
		return all
	}

	hit := make(map[int]struct{})
	for _, a := range available {
		for _, i := range fg.byIngredient[a] {
			hit[i] = struct{}{}
		}
	}
	out := make([]int, 0, len(hit))
	for i := range hit {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func less(s []models.Suggestion, sortBy SortBy) func(i, j int) bool {
	if sortBy == SortRatio {
		return func(i, j int) bool {
			a, b := s[i], s[j]
			if a.MatchRatio != b.MatchRatio {
				return a.MatchRatio > b.MatchRatio
			}
			if a.MatchedCount != b.MatchedCount {
				return a.MatchedCount > b.MatchedCount
			}
			return a.MissingCount < b.MissingCount
		}
	}
	return func(i, j int) bool {
		a, b := s[i], s[j]
		if a.MatchedCount != b.MatchedCount {
			return a.MatchedCount > b.MatchedCount
		}
		if a.MissingCount != b.MissingCount {
			return a.MissingCount < b.MissingCount
		}
		return a.MatchRatio > b.MatchRatio
	}
}
