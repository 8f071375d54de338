package store

import (
	"context"

	"flavorgraph/logger"
	"flavorgraph/models"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const recipesCollection = "recipes"

type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreStore connects to projectID. credentialsFile may be empty to
// use application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create firestore client")
	}
	return &FirestoreStore{client: client, collection: recipesCollection}, nil
}

func (s *FirestoreStore) List(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	iter := s.client.Collection(s.collection).OrderBy("Name", firestore.Asc).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "unable to list recipes")
		}

		var recipe models.Recipe
		if err := doc.DataTo(&recipe); err != nil {
			logger.Warn("skipping undecodable recipe", zap.String("doc", doc.Ref.ID), zap.Error(err))
			continue
		}
		recipe.EnsureSlices()
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (models.Recipe, error) {
	iter := s.client.Collection(s.collection).Where("id", "==", id).Limit(1).Documents(ctx)
	defer iter.Stop()
	doc, err := iter.Next()
	if err == iterator.Done {
		return models.Recipe{}, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return models.Recipe{}, errors.Wrapf(err, "unable to retrieve recipe %s", id)
	}

	var recipe models.Recipe
	if err := doc.DataTo(&recipe); err != nil {
		return models.Recipe{}, errors.Wrapf(err, "unable to decode recipe %s", id)
	}
	recipe.EnsureSlices()
	return recipe, nil
}

// classify maps Firestore status codes onto the store sentinels.
func classify(err error, action, id string) error {
	switch status.Code(err) {
	case codes.AlreadyExists:
		return errors.Wrapf(ErrAlreadyExists, "id %s", id)
	case codes.NotFound:
		return errors.Wrapf(ErrNotFound, "id %s", id)
	}
	return errors.Wrapf(err, "unable to %s recipe %s", action, id)
}

func (s *FirestoreStore) Create(ctx context.Context, recipe models.Recipe) error {
	if _, err := s.client.Collection(s.collection).Doc(recipe.ID).Create(ctx, recipe); err != nil {
		return classify(err, "create", recipe.ID)
	}
	return nil
}

// Update replaces an existing document. The existence check and the write
// run in one transaction.
func (s *FirestoreStore) Update(ctx context.Context, recipe models.Recipe) error {
	ref := s.client.Collection(s.collection).Doc(recipe.ID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, recipe)
	})
	if err != nil {
		return classify(err, "update", recipe.ID)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	ref := s.client.Collection(s.collection).Doc(id)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	if err != nil {
		return classify(err, "delete", id)
	}
	return nil
}

// SeedIfEmpty writes recipes when the collection has no documents yet.
func (s *FirestoreStore) SeedIfEmpty(ctx context.Context, recipes []models.Recipe) (int, error) {
	iter := s.client.Collection(s.collection).Limit(1).Documents(ctx)
	_, err := iter.Next()
	iter.Stop()
	if err == nil {
		return 0, nil
	}
	if err != iterator.Done {
		return 0, errors.Wrap(err, "unable to read recipes collection")
	}

	for i, r := range recipes {
		if _, err := s.client.Collection(s.collection).Doc(r.ID).Set(ctx, r); err != nil {
			return i, errors.Wrapf(err, "unable to seed recipe %q", r.Name)
		}
	}
	return len(recipes), nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
