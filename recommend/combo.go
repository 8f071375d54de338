package recommend

import (
	"context"

	"flavorgraph/models"
)

// The context is checked on the first visited node and every ctxCheckEvery
// nodes after that.
const ctxCheckEvery = 1024

type candidate struct {
	id, name string
	matched  []string
}

func (fg *Graph) comboCandidates(available []string) []candidate {
	suggestions := fg.Suggest(available, 1, SortMatchedThenMissing, nil)
	out := make([]candidate, len(suggestions))
	for i, s := range suggestions {
		out[i] = candidate{id: s.RecipeID, name: s.Recipe, matched: s.Matched}
	}
	return out
}

func comboOf(cands []candidate, picked []int, score models.Score) models.Combo {
	c := models.EmptyCombo()
	for _, i := range picked {
		c.Recipes = append(c.Recipes, cands[i].name)
		c.RecipeIDs = append(c.RecipeIDs, cands[i].id)
	}
	c.Score = score
	return c
}

type backtracker struct {
	ctx   context.Context
	cands []candidate
	max   int
	// prefix[i] is the summed matched count of cands[:i]; cands is sorted by
	// matched count descending so prefix sums bound any completion.
	prefix   []int
	universe int

	covered map[string]int
	total   int
	picked  []int

	best      []int
	bestScore models.Score
	hasBest   bool
	visited   int
	err       error
}

// BestComboBacktracking finds the set of at most maxRecipes recipes that
// covers the most distinct available ingredients, breaking ties on summed
// matches, then on fewer recipes, then on earlier-ranked recipes.
func (fg *Graph) BestComboBacktracking(ctx context.Context, available []string, maxRecipes int) (models.Combo, int, error) {
	cands := fg.comboCandidates(available)
	if len(cands) == 0 || maxRecipes < 1 {
		return models.EmptyCombo(), 0, nil
	}

	b := &backtracker{
		ctx:     ctx,
		cands:   cands,
		max:     maxRecipes,
		prefix:  make([]int, len(cands)+1),
		covered: make(map[string]int),
	}
	coverable := make(map[string]struct{})
	for i, c := range cands {
		b.prefix[i+1] = b.prefix[i] + len(c.matched)
		for _, m := range c.matched {
			coverable[m] = struct{}{}
		}
	}
	b.universe = len(coverable)

	b.search(0)
	if b.err != nil {
		return models.EmptyCombo(), b.visited, b.err
	}
	return comboOf(cands, b.best, b.bestScore), b.visited, nil
}

// bound is the best score reachable by filling the free slots with
// candidates from cands[start:].
func (b *backtracker) bound(start int) models.Score {
	end := start + b.max - len(b.picked)
	if end > len(b.cands) {
		end = len(b.cands)
	}
	gain := b.prefix[end] - b.prefix[start]
	covered := len(b.covered) + gain
	if covered > b.universe {
		covered = b.universe
	}
	return models.Score{Covered: covered, Total: b.total + gain}
}

// promising reports whether some extension drawn from cands[start:] can
// still replace the best set. Extensions are visited in lexicographic index
// order, so an equal score only wins with fewer recipes.
func (b *backtracker) promising(start int) bool {
	if !b.hasBest {
		return true
	}
	ub := b.bound(start)
	if b.bestScore.Less(ub) {
		return true
	}
	return ub == b.bestScore && len(b.picked)+1 < len(b.best)
}

func (b *backtracker) search(start int) {
	for i := start; i < len(b.cands); i++ {
		if !b.promising(i) {
			return
		}
		b.visited++
		if b.visited%ctxCheckEvery == 1 {
			if err := b.ctx.Err(); err != nil {
				b.err = err
				return
			}
		}

		b.push(i)
		score := models.Score{Covered: len(b.covered), Total: b.total}
		if !b.hasBest || b.bestScore.Less(score) || (score == b.bestScore && len(b.picked) < len(b.best)) {
			b.best = append(b.best[:0], b.picked...)
			b.bestScore = score
			b.hasBest = true
		}
		if len(b.picked) < b.max {
			b.search(i + 1)
		}
		b.pop(i)
		if b.err != nil {
			return
		}
	}
}

func (b *backtracker) push(i int) {
	for _, m := range b.cands[i].matched {
		b.covered[m]++
	}
	b.total += len(b.cands[i].matched)
	b.picked = append(b.picked, i)
}

func (b *backtracker) pop(i int) {
	for _, m := range b.cands[i].matched {
		if b.covered[m]--; b.covered[m] == 0 {
			delete(b.covered, m)
		}
	}
	b.total -= len(b.cands[i].matched)
	b.picked = b.picked[:len(b.picked)-1]
}

// BestComboGreedy repeatedly adds the recipe covering the most not yet
// covered ingredients and stops when no recipe adds anything.
func (fg *Graph) BestComboGreedy(available []string, maxRecipes int) models.Combo {
	cands := fg.comboCandidates(available)
	chosen := make([]bool, len(cands))
	covered := make(map[string]struct{})
	var picked []int
	total := 0

	for len(picked) < maxRecipes {
		best, bestGain := -1, 0
		for i, c := range cands {
			if chosen[i] {
				continue
			}
			gain := 0
			for _, m := range c.matched {
				if _, ok := covered[m]; !ok {
					gain++
				}
			}
			if gain > bestGain {
				best, bestGain = i, gain
			}
		}
		if best < 0 {
			break
		}
		chosen[best] = true
		picked = append(picked, best)
		total += len(cands[best].matched)
		for _, m := range cands[best].matched {
			covered[m] = struct{}{}
		}
	}
	return comboOf(cands, picked, models.Score{Covered: len(covered), Total: total})
}
