// Package config loads the service configuration from YAML and the
// environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
)

type Config struct {
	Env         string            `yaml:"env"`
	Server      ServerConfig      `yaml:"server"`
	Store       StoreConfig       `yaml:"store"`
	Firestore   FirestoreConfig   `yaml:"firestore"`
	Search      SearchConfig      `yaml:"search"`
	Image       ImageConfig       `yaml:"image"`
	CORS        CORSConfig        `yaml:"cors"`
	Ingredients IngredientsConfig `yaml:"ingredients"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	// SeedFile replaces the embedded dataset when set.
	SeedFile string `yaml:"seed_file"`
}

type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	SeedIfEmpty     bool   `yaml:"seed_if_empty"`
}

type SearchConfig struct {
	DefaultMaxRecipes int           `yaml:"default_max_recipes"`
	MaxRecipesLimit   int           `yaml:"max_recipes_limit"`
	Timeout           time.Duration `yaml:"timeout"`
}

type ImageConfig struct {
	Height       uint          `yaml:"height"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	MaxBytes     int64         `yaml:"max_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type IngredientsConfig struct {
	Synonyms      map[string]string   `yaml:"synonyms"`
	Substitutions map[string][]string `yaml:"substitutions"`
}

func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{Backend: StoreMemory},
		Search: SearchConfig{
			DefaultMaxRecipes: 3,
			MaxRecipesLimit:   5,
			Timeout:           5 * time.Second,
		},
		Image: ImageConfig{
			Height:       500,
			FetchTimeout: 10 * time.Second,
			MaxBytes:     10 << 20,
		},
		CORS: CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Load reads path on top of Default, applies environment overrides and
// validates. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config %s", path)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, errors.Wrapf(err, "unable to unmarshal config %s", path)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("FLAVORGRAPH_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("FLAVORGRAPH_DATA"); v != "" {
		c.Store.SeedFile = v
	}
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.Firestore.ProjectID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		c.Firestore.CredentialsFile = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreFirestore:
		if c.Firestore.ProjectID == "" {
			return errors.New("firestore.project_id is required for the firestore store")
		}
	default:
		return errors.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Search.DefaultMaxRecipes < 1 {
		return errors.New("search.default_max_recipes must be at least 1")
	}
	if c.Search.MaxRecipesLimit < c.Search.DefaultMaxRecipes {
		return errors.New("search.max_recipes_limit must not be below search.default_max_recipes")
	}
	if c.Image.Height == 0 {
		return errors.New("image.height must be positive")
	}
	return nil
}
