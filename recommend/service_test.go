package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"flavorgraph/models"
	"flavorgraph/store"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewMemoryStore(testRecipes())
	require.NoError(t, err)
	svc, err := NewService(context.Background(), s, Options{
		DefaultMaxRecipes: 3,
		MaxRecipesLimit:   4,
		SearchTimeout:     time.Second,
	})
	require.NoError(t, err)
	return svc
}

func TestRecommend(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Recommend(context.Background(), Request{Ingredients: "The Egg, milk; bread\nSalt, egg"})
	require.NoError(t, err)

	assert.Equal(t, []string{"egg", "milk", "bread", "salt"}, res.Ingredients)
	require.Len(t, res.Suggestions, 5)
	assert.Equal(t, "French Toast", res.Suggestions[0].Recipe)
	assert.Equal(t, []string{"French Toast", "Omelette", "Pancakes"}, res.BestBacktracking.Recipes)
	assert.Equal(t, []string{"French Toast", "Omelette"}, res.BestGreedy.Recipes)
}

func TestRecommendOptions(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Recommend(context.Background(), Request{
		Ingredients: "egg, milk, bread, salt",
		MinMatch:    intPtr(2),
		SortBy:      "ratio",
		MaxRecipes:  intPtr(1),
	})
	require.NoError(t, err)
	assert.Len(t, res.Suggestions, 3)
	assert.Equal(t, []string{"French Toast"}, res.BestBacktracking.Recipes)
	assert.Equal(t, []string{"French Toast"}, res.BestGreedy.Recipes)
}

func TestRecommendSynonymsBothSides(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Recommend(context.Background(), Request{Ingredients: "curd"})
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Raita", res.Suggestions[0].Recipe)
	assert.Equal(t, []string{"yogurt"}, res.Suggestions[0].Matched)
}

func TestRecommendIngredientItems(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Recommend(context.Background(), Request{
		Ingredients: "ignored",
		Items:       []string{"Salt, Pepper", "egg", "EGG"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"salt, pepper", "egg"}, res.Ingredients)
}

func manyRecipes(n int) []models.Recipe {
	out := make([]models.Recipe, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Recipe{
			ID:          fmt.Sprintf("r%03d", i),
			Name:        fmt.Sprintf("Recipe %03d", i),
			Ingredients: []string{fmt.Sprintf("i%d", i%17), fmt.Sprintf("i%d", i%23), fmt.Sprintf("i%d", i%29)},
		})
	}
	return out
}

func TestRecommendSearchTimeout(t *testing.T) {
	s, err := store.NewMemoryStore(manyRecipes(300))
	require.NoError(t, err)
	svc, err := NewService(context.Background(), s, Options{
		DefaultMaxRecipes: 4,
		MaxRecipesLimit:   4,
		SearchTimeout:     time.Nanosecond,
	})
	require.NoError(t, err)

	items := make([]string, 0, 29)
	for i := 0; i < 29; i++ {
		items = append(items, fmt.Sprintf("i%d", i))
	}
	_, err = svc.Recommend(context.Background(), Request{Items: items})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), err)
}

func TestRecommendExpiredContext(t *testing.T) {
	svc := newTestService(t)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.Recommend(ctx, Request{Ingredients: "egg, milk, bread"})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), err)
}

func TestRecommendValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for name, req := range map[string]Request{
		"negative min_match": {MinMatch: intPtr(-1)},
		"zero max_recipes":   {MaxRecipes: intPtr(0)},
		"max_recipes limit":  {MaxRecipes: intPtr(5)},
		"bad sort":           {SortBy: "name"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Recommend(ctx, req)
			assert.True(t, errors.Is(err, ErrInvalidRequest), err)
		})
	}
}

func TestRecommendEmptyInput(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Recommend(context.Background(), Request{Ingredients: " , "})
	require.NoError(t, err)
	assert.Empty(t, res.Ingredients)
	assert.Empty(t, res.Suggestions)
	assert.Equal(t, models.EmptyCombo(), res.BestBacktracking)
	assert.Equal(t, models.EmptyCombo(), res.BestGreedy)
}

func TestRecipeLifecycleReindexes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, models.Recipe{Name: " Saffron Rice ", Ingredients: []string{"rice", "saffron"}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Saffron Rice", created.Name)
	assert.Equal(t, []string{}, created.Tags)

	res, err := svc.Recommend(ctx, Request{Ingredients: "saffron"})
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, created.ID, res.Suggestions[0].RecipeID)

	_, err = svc.UpdateRecipe(ctx, created.ID, models.Recipe{Name: "Plain Rice", Ingredients: []string{"rice"}})
	require.NoError(t, err)
	res, err = svc.Recommend(ctx, Request{Ingredients: "saffron"})
	require.NoError(t, err)
	assert.Empty(t, res.Suggestions)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	_, err = svc.GetRecipe(ctx, created.ID)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.Equal(t, 5, svc.Graph().RecipeCount())
}

func TestCreateRecipeValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, models.Recipe{Name: "  ", Ingredients: []string{"x"}})
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = svc.CreateRecipe(ctx, models.Recipe{Name: "x"})
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = svc.CreateRecipe(ctx, models.Recipe{ID: "toast", Name: "Toast", Ingredients: []string{"bread"}})
	assert.True(t, errors.Is(err, store.ErrAlreadyExists))

	_, err = svc.UpdateRecipe(ctx, "missing", models.Recipe{Name: "x", Ingredients: []string{"y"}})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestNewServiceDefaults(t *testing.T) {
	s, err := store.NewMemoryStore(nil)
	require.NoError(t, err)
	svc, err := NewService(context.Background(), s, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, svc.opts.DefaultMaxRecipes)
	assert.Equal(t, 3, svc.opts.MaxRecipesLimit)
	assert.Equal(t, 0, svc.Graph().RecipeCount())
}

// gatedStore holds the next List call open until release is closed.
type gatedStore struct {
	*store.MemoryStore
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) List(ctx context.Context) ([]models.Recipe, error) {
	if s.armed.CompareAndSwap(true, false) {
		close(s.entered)
		<-s.release
	}
	return s.MemoryStore.List(ctx)
}

func TestConcurrentWritesKeepGraphCurrent(t *testing.T) {
	ms, err := store.NewMemoryStore(testRecipes())
	require.NoError(t, err)
	gs := &gatedStore{MemoryStore: ms, entered: make(chan struct{}), release: make(chan struct{})}
	svc, err := NewService(context.Background(), gs, Options{})
	require.NoError(t, err)
	ctx := context.Background()

	gs.armed.Store(true)
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.CreateRecipe(ctx, models.Recipe{ID: "first", Name: "First", Ingredients: []string{"rice"}})
		errs <- err
	}()
	<-gs.entered

	secondDone := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(secondDone)
		_, err := svc.CreateRecipe(ctx, models.Recipe{ID: "second", Name: "Second", Ingredients: []string{"beans"}})
		errs <- err
	}()

	select {
	case <-secondDone:
		t.Fatal("second write finished while the first rebuild was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(gs.release)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := svc.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 8)
	// the empty recipe is stored but never indexed
	assert.Equal(t, 7, svc.Graph().RecipeCount())

	res, err := svc.Recommend(ctx, Request{Ingredients: "rice, beans"})
	require.NoError(t, err)
	assert.Len(t, res.Suggestions, 2)
}
