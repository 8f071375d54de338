package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"flavorgraph/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"ENV", "FLAVORGRAPH_STORE", "FLAVORGRAPH_DATA", "GOOGLE_CLOUD_PROJECT"} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	seed := filepath.Join(dir, "recipes.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{
  "French Toast": ["bread", "egg", "milk", "butter"],
  "Omelette": ["egg", "onion", "salt"],
  "Grilled Cheese": ["bread", "cheese", "butter"]
}`), 0o600))
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("store:\n  seed_file: "+seed+"\n"), 0o600))

	suggestSortBy = string(recommend.SortMatchedThenMissing)
	suggestMaxRecipes, suggestMinMatch, pairingsLimit = 3, 1, 10

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", cfg))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSuggestCommand(t *testing.T) {
	out, err := runCLI(t, "suggest", "egg, bread", "salt", "--max-recipes", "2")
	require.NoError(t, err)

	var res recommend.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"egg", "bread", "salt"}, res.Ingredients)
	assert.Equal(t, []string{"Omelette", "French Toast"}, res.BestBacktracking.Recipes)
}

func TestPairingsCommand(t *testing.T) {
	out, err := runCLI(t, "pairings", "Butter", "--limit", "1")
	require.NoError(t, err)

	var pairings []recommend.Pairing
	require.NoError(t, json.Unmarshal([]byte(out), &pairings))
	require.Len(t, pairings, 1)
	assert.Equal(t, "bread", pairings[0].Ingredient)
}

func TestSuggestCommandRejectsBadSort(t *testing.T) {
	_, err := runCLI(t, "suggest", "egg", "--sort-by", "name")
	assert.Error(t, err)
}
