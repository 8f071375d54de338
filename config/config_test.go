package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ENV", "PORT", "FLAVORGRAPH_STORE", "FLAVORGRAPH_DATA", "GOOGLE_CLOUD_PROJECT", "GOOGLE_APPLICATION_CREDENTIALS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 2s
search:
  default_max_recipes: 2
  max_recipes_limit: 4
ingredients:
  synonyms:
    aubergine: eggplant
  substitutions:
    lime: [lemon]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 2, cfg.Search.DefaultMaxRecipes)
	assert.Equal(t, 4, cfg.Search.MaxRecipesLimit)
	assert.Equal(t, "eggplant", cfg.Ingredients.Synonyms["aubergine"])
	assert.Equal(t, []string{"lemon"}, cfg.Ingredients.Substitutions["lime"])
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("ENV", "production")
	t.Setenv("FLAVORGRAPH_STORE", "firestore")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "recipes-test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, StoreFirestore, cfg.Store.Backend)
	assert.Equal(t, "recipes-test", cfg.Firestore.ProjectID)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [1, 2"))
	assert.Error(t, err)

	for name, body := range map[string]string{
		"unknown store":     "store:\n  backend: redis\n",
		"firestore project": "store:\n  backend: firestore\n",
		"max below default": "search:\n  default_max_recipes: 4\n  max_recipes_limit: 2\n",
		"zero default":      "search:\n  default_max_recipes: 0\n",
		"zero image height": "image:\n  height: 0\n",
		"empty server addr": "server:\n  addr: \"\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
