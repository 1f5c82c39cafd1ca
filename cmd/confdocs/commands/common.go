package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-confdocs/internal/config"
	"github.com/goliatone/go-confdocs/internal/logfields"
	"github.com/goliatone/go-confdocs/internal/picker"
	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/openapi"
	"github.com/goliatone/go-confdocs/pkg/orchestrator"
)

// Global carries state shared by every command.
type Global struct {
	Stdout  io.Writer
	Picker  picker.Picker
	Formats *format.Registry
}

// NewGlobal returns the production wiring: stdout, survey prompts and the
// built-in formats.
func NewGlobal(stdout io.Writer) *Global {
	return &Global{Stdout: stdout, Picker: picker.NewSurvey(), Formats: format.NewDefaultRegistry()}
}

// formats returns the registry used both to validate configuration and to
// render. It falls back to the built-in formats.
func (g *Global) formats() *format.Registry {
	if g.Formats == nil {
		g.Formats = format.NewDefaultRegistry()
	}
	return g.Formats
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (confdocs.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render  RenderCmd  `cmd:"" help:"Render one record to stdout or a file"`
	Export  ExportCmd  `cmd:"" help:"Write documentation files for records flagged for export"`
	Formats FormatsCmd `cmd:"" help:"List available output formats"`
	Records RecordsCmd `cmd:"" help:"List records defined by the configured schemas"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// SourceFlags are shared by commands that load schemas.
type SourceFlags struct {
	Schemas []string `short:"s" name:"schema" help:"Additional schema file or OpenAPI document (repeatable)"`
	Format  string   `short:"f" help:"Output format (overrides config and CONFIG_DOCS_FORMAT)"`
}

// setup loads the configuration, applies flag overrides and returns an
// orchestrator holding every configured record.
func setup(ctx context.Context, g *Global, root *CLI, flags SourceFlags, outputDir string) (*orchestrator.Orchestrator, *config.Config, error) {
	formats := g.formats()
	cfg, err := config.Load(root.Config, config.WithFormats(formats))
	if err != nil {
		return nil, nil, err
	}
	if flags.Format != "" {
		cfg.Format = flags.Format
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	for _, path := range flags.Schemas {
		cfg.Schemas = append(cfg.Schemas, config.Source{Path: path})
	}
	if err := cfg.Validate(formats); err != nil {
		return nil, nil, err
	}

	rename, err := cfg.OpenAPIRename()
	if err != nil {
		return nil, nil, err
	}
	adapters := orchestrator.NewAdapterRegistry()
	adapters.MustRegister(orchestrator.NewSchemaFileAdapter())
	adapters.MustRegister(orchestrator.NewOpenAPIAdapter(
		openapi.WithSchemas(cfg.OpenAPI.Schemas...),
		openapi.WithRename(rename),
	))

	options := []orchestrator.Option{
		orchestrator.WithAdapters(adapters),
		orchestrator.WithFormats(formats),
		orchestrator.WithDefaultFormat(cfg.Format),
		orchestrator.WithOutputDir(cfg.OutputDir),
		orchestrator.WithTitles(cfg.Titles),
		orchestrator.WithLogger(slog.Default()),
	}
	if cfg.Index.Enabled {
		options = append(options, orchestrator.WithIndex(cfg.Index.Title))
	}
	orch := orchestrator.New(options...)

	for _, src := range cfg.Schemas {
		if _, err := orch.LoadSource(ctx, src.Path, src.Adapter); err != nil {
			return nil, nil, err
		}
	}
	if err := orch.CheckResolved(); err != nil {
		return nil, nil, err
	}
	slog.Debug("schemas loaded", logfields.Count(len(orch.Registry().Names())))
	return orch, cfg, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
