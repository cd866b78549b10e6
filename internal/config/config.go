// Package config loads the zgr project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/zgr/internal/structure"
)

// FileName is the optional project configuration file, read from the
// working directory.
const FileName = "zgr.yaml"

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is built once at startup and passed by value; nothing mutates it
// afterwards.
type Config struct {
	// Dir is the root searched for feature documents.
	Dir string `yaml:"dir"`
	// Extension of feature documents, including the dot.
	Extension string `yaml:"extension"`
	// Database is the path of the sqlite index.
	Database string `yaml:"database"`
	// Keywords are the key spellings accepted as BDD keywords.
	Keywords []string `yaml:"keywords"`
	// MaxDocumentBytes bounds the size of a document read from disk.
	MaxDocumentBytes int64 `yaml:"max_document_bytes"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		Dir:              "features",
		Extension:        ".zgr",
		Database:         "features/zgr.db",
		Keywords:         structure.KeywordNames(),
		MaxDocumentBytes: 4 << 20,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Validate checks c and returns an error wrapping ErrInvalid on failure.
func (c Config) Validate() error {
	switch {
	case c.Dir == "":
		return fmt.Errorf("%w: dir is required", ErrInvalid)
	case !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2:
		return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalid, c.Extension)
	case c.Database == "":
		return fmt.Errorf("%w: database is required", ErrInvalid)
	case len(c.Keywords) == 0:
		return fmt.Errorf("%w: keywords must not be empty", ErrInvalid)
	case c.MaxDocumentBytes <= 0:
		return fmt.Errorf("%w: max_document_bytes must be positive", ErrInvalid)
	case !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level):
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	for _, k := range c.Keywords {
		if strings.TrimSpace(k) != k || k == "" || strings.ContainsAny(k, ":#\"") {
			return fmt.Errorf("%w: keyword %q", ErrInvalid, k)
		}
	}
	return nil
}

// LoadFromFile reads path over the defaults. A missing file yields the
// defaults unchanged.
func LoadFromFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
