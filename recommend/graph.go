// Package recommend ranks recipes against the ingredients a user has and
// searches for recipe combinations that use as many of them as possible.
package recommend

import (
	"sort"

	"flavorgraph/ingredient"
	"flavorgraph/logger"
	"flavorgraph/models"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrUnknownIngredient = errors.New("unknown ingredient")

type NodeKind string

const (
	IngredientNode NodeKind = "ingredient"
	RecipeNode     NodeKind = "recipe"
)

// Node is a vertex of the bipartite ingredient graph. Key is the recipe ID
// or the normalized ingredient name.
type Node struct {
	Kind NodeKind
	Key  string
}

func nodeHash(n Node) string {
	return string(n.Kind) + ":" + n.Key
}

type recipeEntry struct {
	recipe      models.Recipe
	ingredients map[string]struct{}
	sorted      []string
}

// Graph is an immutable index over a recipe set. Recipes appear in the order
// they were given.
type Graph struct {
	g       graph.Graph[string, Node]
	recipes []recipeEntry
	// ingredient -> indexes into recipes, ascending
	byIngredient map[string][]int
}

// BuildGraph links every recipe to its normalized ingredients. Recipes with
// no usable ingredient are left out.
func BuildGraph(recipes []models.Recipe, norm *ingredient.Normalizer) (*Graph, error) {
	g := graph.New(nodeHash)

	kept := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		ings := norm.NormalizeAll(r.Ingredients)
		if len(ings) == 0 {
			logger.Warn("skipping recipe without ingredients", zap.String("id", r.ID), zap.String("name", r.Name))
			continue
		}
		rn := Node{Kind: RecipeNode, Key: r.ID}
		if err := g.AddVertex(rn, graph.VertexAttribute("name", r.Name)); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				logger.Warn("skipping duplicate recipe id", zap.String("id", r.ID))
				continue
			}
			return nil, errors.Wrapf(err, "unable to add recipe %s", r.ID)
		}
		for _, ing := range ings {
			in := Node{Kind: IngredientNode, Key: ing}
			if err := g.AddVertex(in); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, errors.Wrapf(err, "unable to add ingredient %s", ing)
			}
			if err := g.AddEdge(nodeHash(rn), nodeHash(in)); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, errors.Wrapf(err, "unable to link %s to %s", r.ID, ing)
			}
		}
		kept = append(kept, r)
	}

	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, errors.Wrap(err, "unable to get adjacency map")
	}

	fg := &Graph{
		g:            g,
		recipes:      make([]recipeEntry, 0, len(kept)),
		byIngredient: make(map[string][]int),
	}
	for i, r := range kept {
		edges := adj[nodeHash(Node{Kind: RecipeNode, Key: r.ID})]
		entry := recipeEntry{
			recipe:      r,
			ingredients: make(map[string]struct{}, len(edges)),
			sorted:      make([]string, 0, len(edges)),
		}
		for target := range edges {
			ing, err := g.Vertex(target)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to get vertex %s", target)
			}
			entry.ingredients[ing.Key] = struct{}{}
			entry.sorted = append(entry.sorted, ing.Key)
			fg.byIngredient[ing.Key] = append(fg.byIngredient[ing.Key], i)
		}
		sort.Strings(entry.sorted)
		fg.recipes = append(fg.recipes, entry)
	}
	return fg, nil
}

func (fg *Graph) RecipeCount() int { return len(fg.recipes) }

func (fg *Graph) IngredientCount() int { return len(fg.byIngredient) }

type IngredientUsage struct {
	Name    string `json:"name"`
	Recipes int    `json:"recipes"`
}

// Ingredients lists every known ingredient by name.
func (fg *Graph) Ingredients() []IngredientUsage {
	out := make([]IngredientUsage, 0, len(fg.byIngredient))
	for name, idx := range fg.byIngredient {
		out = append(out, IngredientUsage{Name: name, Recipes: len(idx)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type Pairing struct {
	Ingredient    string   `json:"ingredient"`
	SharedRecipes int      `json:"shared_recipes"`
	Recipes       []string `json:"recipes"`
}

// Pairings walks two hops from name: its recipes, then their other
// ingredients. Results are ranked by shared recipe count, then name. limit
// <= 0 returns all.
func (fg *Graph) Pairings(name string, limit int) ([]Pairing, error) {
	idx, ok := fg.byIngredient[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownIngredient, "%q", name)
	}

	shared := make(map[string]*Pairing)
	for _, i := range idx {
		entry := fg.recipes[i]
		for _, other := range entry.sorted {
			if other == name {
				continue
			}
			p, ok := shared[other]
			if !ok {
				p = &Pairing{Ingredient: other}
				shared[other] = p
			}
			p.SharedRecipes++
			p.Recipes = append(p.Recipes, entry.recipe.Name)
		}
	}

	out := make([]Pairing, 0, len(shared))
	for _, p := range shared {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SharedRecipes != out[j].SharedRecipes {
			return out[i].SharedRecipes > out[j].SharedRecipes
		}
		return out[i].Ingredient < out[j].Ingredient
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
