package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for configuration.
const DefaultPath = "aldoc.yaml"

type Config struct {
	Project struct {
		Root       string   `yaml:"root" validate:"required"`
		Extensions []string `yaml:"extensions" validate:"min=1,dive,startswith=."`
		Ignore     []string `yaml:"ignore"`
	} `yaml:"project"`
	Docs struct {
		Snippet         bool `yaml:"snippet"`          // keep ${N:...} placeholders when writing files
		Objects         bool `yaml:"objects"`          // document object declarations
		LocalProcedures bool `yaml:"local_procedures"` // document local procedures
		DiffContext     int  `yaml:"diff_context" validate:"gte=0"`
	} `yaml:"docs"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Project.Root = "."
	cfg.Project.Extensions = []string{".al"}
	cfg.Project.Ignore = []string{".git", ".alpackages", ".snapshots", ".vscode", "node_modules"}
	cfg.Docs.Objects = true
	cfg.Docs.LocalProcedures = true
	cfg.Docs.DiffContext = 3
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config over the defaults
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("ALDOC_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if err := boolEnv("ALDOC_SNIPPET", &cfg.Docs.Snippet); err != nil {
		return nil, err
	}
	if err := boolEnv("ALDOC_LOCAL_PROCEDURES", &cfg.Docs.LocalProcedures); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func boolEnv(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
