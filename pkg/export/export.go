package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goliatone/go-confdocs/internal/logfields"
	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/render"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

// DefaultDir is the output directory used when none is configured.
const DefaultDir = "docs"

// FileName returns <RecordName>.<ext>.md for rec in strategy's syntax.
func FileName(rec *schema.Record, strategy format.Strategy) string {
	return rec.Name() + "." + strategy.Extension() + ".md"
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for write events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Exporter renders records and writes them below a directory.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

// New constructs an Exporter writing to dir, DefaultDir when empty.
func New(dir string, options ...Option) *Exporter {
	if dir == "" {
		dir = DefaultDir
	}
	e := &Exporter{dir: dir, logger: slog.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Dir reports the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export renders rec and writes it to Dir()/FileName(rec, strategy). Nothing
// is written when rendering fails.
func (e *Exporter) Export(rec *schema.Record, strategy format.Strategy, title string) (string, error) {
	if rec == nil {
		return "", errors.New("export: record is nil")
	}
	if strategy == nil {
		strategy = format.TOML{}
	}

	doc, err := render.Render(rec, render.Options{Format: strategy, Title: title})
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	path := filepath.Join(e.dir, FileName(rec, strategy))
	if err := e.write(path, doc); err != nil {
		return "", err
	}
	e.logger.Debug("exported record docs",
		logfields.Record(rec.Name()),
		logfields.Format(strategy.Name()),
		logfields.Path(path),
	)
	return path, nil
}

// WriteIndex renders the listing for entries into Dir()/index.md.
func (e *Exporter) WriteIndex(title string, entries []IndexEntry) (string, error) {
	doc, err := RenderIndex(title, entries)
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.dir, IndexFile)
	if err := e.write(path, doc); err != nil {
		return "", err
	}
	e.logger.Debug("wrote docs index", logfields.Path(path), logfields.Count(len(entries)))
	return path, nil
}

func (e *Exporter) write(path, doc string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// Entry builds the index line for a record exported with strategy.
func Entry(rec *schema.Record, strategy format.Strategy) IndexEntry {
	entry := IndexEntry{
		Record: rec.Name(),
		File:   FileName(rec, strategy),
		Format: strategy.Name(),
	}
	if lines := rec.DocLines(); len(lines) > 0 {
		entry.Summary = lines[0]
	}
	return entry
}
