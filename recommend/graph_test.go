package recommend

import (
	"testing"

	"flavorgraph/ingredient"
	"flavorgraph/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: "omelette", Name: "Omelette", Ingredients: []string{"egg", "onion", "salt", "Cilantro"}},
		{ID: "pancakes", Name: "Pancakes", Ingredients: []string{"flour", "milk", "egg", "sugar", "butter"}},
		{ID: "toast", Name: "French Toast", Ingredients: []string{"bread", "egg", "milk", "butter"}},
		{ID: "raita", Name: "Raita", Ingredients: []string{"curd", "cucumber", "salt"}},
		{ID: "sandwich", Name: "Grilled Cheese", Ingredients: []string{"bread", "cheese", "butter", "butter"}},
		{ID: "empty", Name: "Nothing", Ingredients: []string{" ", "the"}},
	}
}

func buildTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := BuildGraph(testRecipes(), ingredient.NewNormalizer(nil))
	require.NoError(t, err)
	return g
}

func TestBuildGraph(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, 5, g.RecipeCount())
	assert.Equal(t, 12, g.IngredientCount())

	order, err := g.g.Order()
	require.NoError(t, err)
	assert.Equal(t, 17, order)

	size, err := g.g.Size()
	require.NoError(t, err)
	assert.Equal(t, 19, size)

	// synonyms apply to recipe ingredients
	assert.Contains(t, g.byIngredient, "coriander")
	assert.Contains(t, g.byIngredient, "yogurt")
	assert.NotContains(t, g.byIngredient, "curd")
	assert.Equal(t, []int{1, 2, 4}, g.byIngredient["butter"])
}

func TestBuildGraphDuplicateID(t *testing.T) {
	g, err := BuildGraph([]models.Recipe{
		{ID: "a", Name: "A", Ingredients: []string{"x"}},
		{ID: "a", Name: "A2", Ingredients: []string{"y"}},
	}, ingredient.NewNormalizer(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, g.RecipeCount())
	assert.Equal(t, 1, g.IngredientCount())
}

func TestBuildGraphKeepsSeparatorsInRecipeIngredients(t *testing.T) {
	g, err := BuildGraph([]models.Recipe{
		{ID: "g", Name: "Garlic Salt", Ingredients: []string{"garlic, minced", "salt"}},
	}, ingredient.NewNormalizer(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, g.IngredientCount())

	got := g.Suggest([]string{"salt"}, 1, SortMatchedThenMissing, nil)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"garlic, minced"}, got[0].Missing)
	assert.Equal(t, []string{"salt"}, got[0].Matched)
}

func TestIngredients(t *testing.T) {
	g := buildTestGraph(t)
	ings := g.Ingredients()
	require.Len(t, ings, 12)
	assert.Equal(t, IngredientUsage{Name: "bread", Recipes: 2}, ings[0])
	assert.Equal(t, "yogurt", ings[len(ings)-1].Name)
}

func TestPairings(t *testing.T) {
	g := buildTestGraph(t)

	got, err := g.Pairings("butter", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Pairing{Ingredient: "bread", SharedRecipes: 2, Recipes: []string{"French Toast", "Grilled Cheese"}}, got[0])
	assert.Equal(t, "egg", got[1].Ingredient)
	assert.Equal(t, "milk", got[2].Ingredient)

	all, err := g.Pairings("butter", 0)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	_, err = g.Pairings("saffron", 0)
	assert.True(t, errors.Is(err, ErrUnknownIngredient))
}
