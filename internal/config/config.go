package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-confdocs/pkg/export"
	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

// Environment variables that override the configuration file.
const (
	EnvFormat    = export.EnvFormat
	EnvOutputDir = "CONFIG_DOCS_OUTPUT_DIR"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "confdocs.yaml"

// Config represents the CLI configuration.
type Config struct {
	Schemas   []Source          `yaml:"schemas"`
	Format    string            `yaml:"format"`
	OutputDir string            `yaml:"output_dir"`
	Index     IndexConfig       `yaml:"index"`
	Titles    map[string]string `yaml:"titles,omitempty"`
	OpenAPI   OpenAPIConfig     `yaml:"openapi"`
}

// Source is one schema file or OpenAPI document to load.
type Source struct {
	Path string `yaml:"path"`
	// Adapter forces a source adapter; empty detects it from the payload.
	Adapter string `yaml:"adapter,omitempty"`
}

// IndexConfig controls the generated index.md.
type IndexConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title,omitempty"`
}

// OpenAPIConfig tunes conversion of OpenAPI component schemas.
type OpenAPIConfig struct {
	RenameAll string   `yaml:"rename_all,omitempty"`
	Schemas   []string `yaml:"schemas,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadOption customises Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	formats *format.Registry
}

// WithFormats validates the selected format against reg instead of the
// built-in formats.
func WithFormats(reg *format.Registry) LoadOption {
	return func(opts *loadOptions) {
		opts.formats = reg
	}
}

// Load reads the configuration at path, applies defaults and environment
// overrides, then validates the result. .env files in the working directory
// are loaded first without overriding existing variables. A missing file at
// DefaultPath is not an error.
func Load(path string, options ...LoadOption) (*Config, error) {
	opts := loadOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	if err := export.LoadDotEnv(".env", ".env.local"); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		cfg.resolvePaths(filepath.Dir(path))
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.Validate(opts.formats); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Format) == "" {
		c.Format = format.DefaultName
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		c.OutputDir = "docs"
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvFormat)); v != "" {
		c.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		c.OutputDir = v
	}
}

// resolvePaths makes relative schema paths relative to the config file.
func (c *Config) resolvePaths(base string) {
	for i, src := range c.Schemas {
		if src.Path != "" && !filepath.IsAbs(src.Path) {
			c.Schemas[i].Path = filepath.Join(base, src.Path)
		}
	}
}

// Validate reports the first configuration problem found. The format must be
// registered in formats; nil means the built-in formats.
func (c *Config) Validate(formats *format.Registry) error {
	if formats == nil {
		formats = format.NewDefaultRegistry()
	}
	if !formats.Has(c.Format) {
		return fmt.Errorf("config: %w %q", format.ErrUnknownFormat, c.Format)
	}
	for i, src := range c.Schemas {
		if strings.TrimSpace(src.Path) == "" {
			return fmt.Errorf("config: schemas[%d]: path is required", i)
		}
	}
	if _, err := c.OpenAPIRename(); err != nil {
		return err
	}
	return nil
}

// OpenAPIRename parses openapi.rename_all.
func (c *Config) OpenAPIRename() (schema.RenamePolicy, error) {
	policy, err := schema.ParseRenamePolicy(c.OpenAPI.RenameAll)
	if err != nil {
		return "", fmt.Errorf("config: openapi.rename_all: %w", err)
	}
	return policy, nil
}

// Init writes an example configuration to path. Existing files are kept
// unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config: %s already exists (use --force to overwrite)", path)
	}

	example := Config{
		Schemas: []Source{
			{Path: "schemas/app.yaml"},
			{Path: "api/openapi.yaml", Adapter: "openapi"},
		},
		Format:    format.DefaultName,
		OutputDir: "docs",
		Index:     IndexConfig{Enabled: true, Title: "Configuration reference"},
		Titles:    map[string]string{"Server": "Server settings"},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("config: marshal example: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
