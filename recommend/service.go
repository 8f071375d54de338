package recommend

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"flavorgraph/ingredient"
	"flavorgraph/logger"
	"flavorgraph/metrics"
	"flavorgraph/models"
	"flavorgraph/store"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidRequest marks input errors; callers map it to 400.
var ErrInvalidRequest = errors.New("invalid request")

type Options struct {
	DefaultMaxRecipes int
	MaxRecipesLimit   int
	SearchTimeout     time.Duration
	Synonyms          map[string]string
	Substitutions     map[string][]string
}

type Request struct {
	// Ingredients is free text split on commas, semicolons and newlines.
	Ingredients string
	// Items, when non-nil, replaces Ingredients. Each item is one ingredient.
	Items []string
	// nil means 1
	MinMatch *int
	SortBy   string
	// nil means Options.DefaultMaxRecipes
	MaxRecipes *int
}

type Result struct {
	Ingredients      []string            `json:"ingredients"`
	Suggestions      []models.Suggestion `json:"suggestions"`
	BestBacktracking models.Combo        `json:"best_backtracking"`
	BestGreedy       models.Combo        `json:"best_greedy"`
}

// Service answers recommendation queries over the recipes of a store and
// keeps the ingredient graph in step with recipe changes.
type Service struct {
	store store.RecipeStore
	norm  *ingredient.Normalizer
	subs  ingredient.Substitutions
	opts  Options
	graph atomic.Pointer[Graph]

	// mu orders store writes and graph rebuilds so the last stored graph
	// reflects the last write.
	mu sync.Mutex
}

func NewService(ctx context.Context, s store.RecipeStore, opts Options) (*Service, error) {
	if opts.DefaultMaxRecipes < 1 {
		opts.DefaultMaxRecipes = 3
	}
	if opts.MaxRecipesLimit < opts.DefaultMaxRecipes {
		opts.MaxRecipesLimit = opts.DefaultMaxRecipes
	}
	svc := &Service{
		store: s,
		norm:  ingredient.NewNormalizer(opts.Synonyms),
		subs:  ingredient.NewSubstitutions(opts.Substitutions),
		opts:  opts,
	}
	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Graph returns the current index. It is never nil after NewService.
func (svc *Service) Graph() *Graph { return svc.graph.Load() }

func (svc *Service) Normalizer() *ingredient.Normalizer { return svc.norm }

// Reload rebuilds the graph from the store.
func (svc *Service) Reload(ctx context.Context) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.reload(ctx)
}

func (svc *Service) reload(ctx context.Context) error {
	recipes, err := svc.store.List(ctx)
	if err != nil {
		metrics.GraphRebuilds.WithLabelValues("error").Inc()
		return errors.Wrap(err, "unable to list recipes")
	}
	g, err := BuildGraph(recipes, svc.norm)
	if err != nil {
		metrics.GraphRebuilds.WithLabelValues("error").Inc()
		return errors.Wrap(err, "unable to build ingredient graph")
	}
	svc.graph.Store(g)
	metrics.GraphRebuilds.WithLabelValues("ok").Inc()
	metrics.GraphVertices.WithLabelValues(string(RecipeNode)).Set(float64(g.RecipeCount()))
	metrics.GraphVertices.WithLabelValues(string(IngredientNode)).Set(float64(g.IngredientCount()))
	logger.Info("ingredient graph built", zap.Int("recipes", g.RecipeCount()), zap.Int("ingredients", g.IngredientCount()))
	return nil
}

func (svc *Service) validate(req Request) (minMatch, maxRecipes int, sortBy SortBy, err error) {
	minMatch, maxRecipes = 1, svc.opts.DefaultMaxRecipes
	if req.MinMatch != nil {
		minMatch = *req.MinMatch
	}
	if req.MaxRecipes != nil {
		maxRecipes = *req.MaxRecipes
	}
	if minMatch < 0 {
		return 0, 0, "", errors.Wrap(ErrInvalidRequest, "min_match must not be negative")
	}
	if maxRecipes < 1 || maxRecipes > svc.opts.MaxRecipesLimit {
		return 0, 0, "", errors.Wrapf(ErrInvalidRequest, "max_recipes must be between 1 and %d", svc.opts.MaxRecipesLimit)
	}
	sortBy, err = ParseSortBy(req.SortBy)
	if err != nil {
		return 0, 0, "", errors.Wrap(ErrInvalidRequest, err.Error())
	}
	return minMatch, maxRecipes, sortBy, nil
}

// Recommend ranks recipes and runs both combination searches.
func (svc *Service) Recommend(ctx context.Context, req Request) (Result, error) {
	minMatch, maxRecipes, sortBy, err := svc.validate(req)
	if err != nil {
		return Result{}, err
	}

	g := svc.Graph()
	available := svc.norm.Parse(req.Ingredients)
	if req.Items != nil {
		available = svc.norm.NormalizeAll(req.Items)
	}

	start := time.Now()
	suggestions := g.Suggest(available, minMatch, sortBy, svc.subs)
	metrics.SearchDuration.WithLabelValues("ranking").Observe(time.Since(start).Seconds())
	metrics.Suggestions.Observe(float64(len(suggestions)))

	if svc.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.opts.SearchTimeout)
		defer cancel()
	}

	res := Result{Ingredients: available, Suggestions: suggestions}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		start := time.Now()
		combo, visited, err := g.BestComboBacktracking(ctx, available, maxRecipes)
		metrics.SearchDuration.WithLabelValues("backtracking").Observe(time.Since(start).Seconds())
		metrics.SearchNodes.Observe(float64(visited))
		if err != nil {
			return errors.Wrap(err, "backtracking search")
		}
		res.BestBacktracking = combo
		return nil
	})
	eg.Go(func() error {
		start := time.Now()
		res.BestGreedy = g.BestComboGreedy(available, maxRecipes)
		metrics.SearchDuration.WithLabelValues("greedy").Observe(time.Since(start).Seconds())
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	logger.Debug("recommendation",
		zap.Strings("ingredients", available),
		zap.Int("suggestions", len(suggestions)),
		zap.Strings("backtracking", res.BestBacktracking.Recipes),
		zap.Strings("greedy", res.BestGreedy.Recipes))
	return res, nil
}

func (svc *Service) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return svc.store.List(ctx)
}

func (svc *Service) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	return svc.store.Get(ctx, id)
}

func checkRecipe(r *models.Recipe) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.Wrap(ErrInvalidRequest, "recipe name is required")
	}
	if len(r.Ingredients) == 0 {
		return errors.Wrap(ErrInvalidRequest, "recipe needs at least one ingredient")
	}
	r.EnsureSlices()
	return nil
}

// CreateRecipe stores r, assigning an ID when it has none, and reindexes.
func (svc *Service) CreateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	if err := checkRecipe(&r); err != nil {
		return models.Recipe{}, err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if err := svc.store.Create(ctx, r); err != nil {
		return models.Recipe{}, err
	}
	return r, svc.reload(ctx)
}

func (svc *Service) UpdateRecipe(ctx context.Context, id string, r models.Recipe) (models.Recipe, error) {
	r.ID = id
	if err := checkRecipe(&r); err != nil {
		return models.Recipe{}, err
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if err := svc.store.Update(ctx, r); err != nil {
		return models.Recipe{}, err
	}
	return r, svc.reload(ctx)
}

func (svc *Service) DeleteRecipe(ctx context.Context, id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if err := svc.store.Delete(ctx, id); err != nil {
		return err
	}
	return svc.reload(ctx)
}
