package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"flavorgraph/config"
	"flavorgraph/data"
	"flavorgraph/logger"
	"flavorgraph/models"
	"flavorgraph/recommend"
	"flavorgraph/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "flavorgraph",
	Short:         "Recipe recommendations from the ingredients you have",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("FLAVORGRAPH_CONFIG"), "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, suggestCmd, pairingsCmd)
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "flavorgraph:", err)
		os.Exit(1)
	}
}

// setup loads the config, starts the logger and opens the recipe store.
func setup(ctx context.Context) (*config.Config, store.RecipeStore, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.InitializeLogger(cfg.Env); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize logger")
	}

	seed, err := loadSeed(cfg)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Store.Backend {
	case config.StoreFirestore:
		fs, err := store.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Firestore.SeedIfEmpty {
			n, err := fs.SeedIfEmpty(ctx, seed)
			if err != nil {
				fs.Close()
				return nil, nil, err
			}
			if n > 0 {
				logger.Info("seeded firestore", zap.Int("recipes", n))
			}
		}
		return cfg, fs, nil
	default:
		ms, err := store.NewMemoryStore(seed)
		if err != nil {
			return nil, nil, err
		}
		return cfg, ms, nil
	}
}

func loadSeed(cfg *config.Config) ([]models.Recipe, error) {
	if cfg.Store.SeedFile != "" {
		return store.LoadSeedFile(cfg.Store.SeedFile)
	}
	recipes, err := store.ParseSeed(bytes.NewReader(data.Recipes))
	if err != nil {
		return nil, errors.Wrap(err, "embedded dataset")
	}
	return recipes, nil
}

func newService(ctx context.Context, cfg *config.Config, s store.RecipeStore) (*recommend.Service, error) {
	return recommend.NewService(ctx, s, recommend.Options{
		DefaultMaxRecipes: cfg.Search.DefaultMaxRecipes,
		MaxRecipesLimit:   cfg.Search.MaxRecipesLimit,
		SearchTimeout:     cfg.Search.Timeout,
		Synonyms:          cfg.Ingredients.Synonyms,
		Substitutions:     cfg.Ingredients.Substitutions,
	})
}
