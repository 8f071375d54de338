// Package store persists recipes.
package store

import (
	"context"

	"flavorgraph/models"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("recipe not found")
	ErrAlreadyExists = errors.New("recipe already exists")
)

// RecipeStore is implemented by MemoryStore and FirestoreStore. List returns
// recipes in a stable order; recommendations use it to break ties.
type RecipeStore interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id string) (models.Recipe, error)
	Create(ctx context.Context, recipe models.Recipe) error
	Update(ctx context.Context, recipe models.Recipe) error
	Delete(ctx context.Context, id string) error
	Close() error
}
