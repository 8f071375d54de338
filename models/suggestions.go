package models

// Suggestion is the gap analysis of one recipe against the ingredients a
// user has.
type Suggestion struct {
	RecipeID      string              `json:"recipe_id"`
	Recipe        string              `json:"recipe"`
	Matched       []string            `json:"matched"`
	Missing       []string            `json:"missing"`
	MatchedCount  int                 `json:"matched_count"`
	MissingCount  int                 `json:"missing_count"`
	MatchRatio    float64             `json:"match_ratio"`
	Substitutions map[string][]string `json:"substitutions"`
}

// Score ranks a recipe combination: distinct covered ingredients first,
// summed matches second.
type Score struct {
	Covered int `json:"covered"`
	Total   int `json:"total"`
}

// Less reports whether s ranks below o.
func (s Score) Less(o Score) bool {
	if s.Covered != o.Covered {
		return s.Covered < o.Covered
	}
	return s.Total < o.Total
}

type Combo struct {
	Recipes   []string `json:"recipes"`
	RecipeIDs []string `json:"recipe_ids"`
	Score     Score    `json:"score"`
}

// EmptyCombo is returned when no recipe matches.
func EmptyCombo() Combo {
	return Combo{Recipes: []string{}, RecipeIDs: []string{}}
}
