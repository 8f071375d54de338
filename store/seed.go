package store

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"flavorgraph/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// seedNamespace derives stable IDs for seed recipes from their names, so a
// reseeded store hands out the same IDs.
var seedNamespace = uuid.MustParse("6f3c1e52-8d7b-4f0a-9a47-1b2f5e9c0d13")

// SeedID is the ID a seed recipe without one gets.
func SeedID(name string) string {
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// ParseSeed reads either an object mapping recipe name to ingredient list
// (key order kept) or an array of full recipes.
func ParseSeed(r io.Reader) ([]models.Recipe, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read seed")
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("seed is empty")
	}

	var recipes []models.Recipe
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &recipes); err != nil {
			return nil, errors.Wrap(err, "unable to decode recipe list")
		}
	case '{':
		recipes, err = parseNameMap(trimmed)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Errorf("seed must be a JSON object or array, got %q", trimmed[0])
	}

	for i := range recipes {
		if recipes[i].ID == "" {
			recipes[i].ID = SeedID(recipes[i].Name)
		}
		recipes[i].EnsureSlices()
	}
	return recipes, nil
}

func parseNameMap(raw []byte) ([]models.Recipe, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "unable to read seed object")
	}

	var recipes []models.Recipe
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "unable to read recipe name")
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected token %v", tok)
		}
		var ings []string
		if err := dec.Decode(&ings); err != nil {
			return nil, errors.Wrapf(err, "unable to decode ingredients of %q", name)
		}
		recipes = append(recipes, models.Recipe{Name: name, Ingredients: ings})
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "unterminated seed object")
	}
	return recipes, nil
}

// LoadSeedFile is ParseSeed on a file.
func LoadSeedFile(path string) ([]models.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open seed file %s", path)
	}
	defer f.Close()

	recipes, err := ParseSeed(f)
	if err != nil {
		return nil, errors.Wrapf(err, "seed file %s", path)
	}
	return recipes, nil
}
