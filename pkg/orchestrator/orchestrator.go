package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-confdocs/internal/logfields"
	"github.com/goliatone/go-confdocs/pkg/export"
	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/render"
	"github.com/goliatone/go-confdocs/pkg/schema"
	"github.com/goliatone/go-confdocs/pkg/schemafile"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects the schema registry records are loaded into and
// resolved from.
func WithRegistry(registry *schema.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithFormats injects the format registry.
func WithFormats(formats *format.Registry) Option {
	return func(o *Orchestrator) {
		o.formats = formats
	}
}

// WithAdapters injects the source adapter registry.
func WithAdapters(adapters *AdapterRegistry) Option {
	return func(o *Orchestrator) {
		o.adapters = adapters
	}
}

// WithDefaultFormat overrides the format used when a request omits one.
func WithDefaultFormat(name string) Option {
	return func(o *Orchestrator) {
		o.defaultFormat = strings.TrimSpace(name)
	}
}

// WithOutputDir sets the directory exports are written to.
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) {
		o.outputDir = dir
	}
}

// WithTitles supplies per-record heading overrides keyed by record name.
func WithTitles(titles map[string]string) Option {
	return func(o *Orchestrator) {
		if len(titles) == 0 {
			return
		}
		if o.titles == nil {
			o.titles = make(map[string]string, len(titles))
		}
		for name, title := range titles {
			o.titles[name] = title
		}
	}
}

// WithIndex writes an index.md listing every exported document, headed by
// title (export.DefaultIndexTitle when empty).
func WithIndex(title string) Option {
	return func(o *Orchestrator) {
		o.writeIndex = true
		o.indexTitle = title
	}
}

// WithLogger sets the logger for pipeline events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates loading schema sources, rendering records and
// exporting documents. Missing dependencies are initialised with the built-in
// implementations so callers can start with a single constructor call.
type Orchestrator struct {
	registry      *schema.Registry
	formats       *format.Registry
	adapters      *AdapterRegistry
	defaultFormat string
	outputDir     string
	titles        map[string]string
	writeIndex    bool
	indexTitle    string
	logger        *slog.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.registry == nil {
		o.registry = schema.NewRegistry()
	}
	if o.formats == nil {
		o.formats = format.NewDefaultRegistry()
	}
	if o.adapters == nil {
		o.adapters = NewDefaultAdapterRegistry()
	}
	if o.outputDir == "" {
		o.outputDir = export.DefaultDir
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Registry exposes the schema registry.
func (o *Orchestrator) Registry() *schema.Registry {
	return o.registry
}

// Formats exposes the format registry.
func (o *Orchestrator) Formats() *format.Registry {
	return o.formats
}

// LoadSource reads path and registers the records it defines. adapter names
// the source adapter; empty detects it from the payload.
func (o *Orchestrator) LoadSource(ctx context.Context, path, adapter string) ([]*schema.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read %s: %w", path, err)
	}

	resolved, err := o.resolveAdapter(path, raw, adapter)
	if err != nil {
		return nil, err
	}
	records, err := resolved.Load(ctx, o.registry, path, raw)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load %s: %w", path, err)
	}
	o.logger.Debug("loaded schema source",
		logfields.Source(path),
		slog.String("adapter", resolved.Name()),
		logfields.Count(len(records)),
	)
	return records, nil
}

// CheckResolved reports nested references to records that were never loaded.
func (o *Orchestrator) CheckResolved() error {
	return schemafile.CheckResolved(o.registry)
}

func (o *Orchestrator) resolveAdapter(path string, raw []byte, name string) (SourceAdapter, error) {
	if strings.TrimSpace(name) != "" {
		return o.adapters.Get(name)
	}
	matches := o.adapters.Detect(path, raw)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("orchestrator: unable to detect source type of %s", path)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("orchestrator: multiple adapters matched %s (%s), specify one", path, adapterNames(matches))
	}
}

// Request describes one render.
type Request struct {
	// Record names the root record to render.
	Record string

	// Format names the output format. Empty falls back to the configured
	// default.
	Format string

	// Title overrides the top-level heading. Empty falls back to WithTitles,
	// then the record name.
	Title string
}

// Generate renders the requested record and returns the markdown bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Record == "" {
		return nil, errors.New("orchestrator: record name is required")
	}

	rec, err := o.registry.Get(req.Record)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	strategy, err := o.strategyFor(req.Format)
	if err != nil {
		return nil, err
	}

	doc, err := render.Render(rec, render.Options{Format: strategy, Title: o.titleFor(rec.Name(), req.Title)})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return []byte(doc), nil
}

// ExportRequest selects records for Export.
type ExportRequest struct {
	// Records names the records to export, in order.
	Records []string

	// Format names the output format. Empty falls back to the configured
	// default.
	Format string
}

// Export writes one document per requested record and returns the written
// paths. Rendering stops at the first failure; files already written stay.
func (o *Orchestrator) Export(ctx context.Context, req ExportRequest) ([]string, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	strategy, err := o.strategyFor(req.Format)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	exporter := export.New(o.outputDir, export.WithLogger(o.logger))
	paths := make([]string, 0, len(req.Records))
	entries := make([]export.IndexEntry, 0, len(req.Records))
	for _, name := range req.Records {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		rec, err := o.registry.Get(name)
		if err != nil {
			return paths, fmt.Errorf("orchestrator: %w", err)
		}
		path, err := exporter.Export(rec, strategy, o.titleFor(rec.Name(), ""))
		if err != nil {
			o.logger.Error("export failed", logfields.Record(name), logfields.Error(err))
			return paths, fmt.Errorf("orchestrator: %w", err)
		}
		paths = append(paths, path)
		entries = append(entries, export.Entry(rec, strategy))
	}

	if o.writeIndex {
		path, err := exporter.WriteIndex(o.indexTitle, entries)
		if err != nil {
			return paths, fmt.Errorf("orchestrator: %w", err)
		}
		paths = append(paths, path)
	}

	o.logger.Info("exported configuration docs",
		logfields.Format(strategy.Name()),
		logfields.Count(len(entries)),
		logfields.Path(o.outputDir),
		logfields.DurationMS(float64(time.Since(started).Microseconds())/1000),
	)
	return paths, nil
}

// ExportAll exports every record flagged for export, in registration order.
func (o *Orchestrator) ExportAll(ctx context.Context) ([]string, error) {
	exported := o.registry.Exported()
	names := make([]string, 0, len(exported))
	for _, rec := range exported {
		names = append(names, rec.Name())
	}
	return o.Export(ctx, ExportRequest{Records: names})
}

func (o *Orchestrator) strategyFor(name string) (format.Strategy, error) {
	if strings.TrimSpace(name) == "" {
		name = o.defaultFormat
	}
	strategy, err := o.formats.Get(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return strategy, nil
}

func (o *Orchestrator) titleFor(record, explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	return o.titles[record]
}
