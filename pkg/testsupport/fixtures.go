package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confdocs/pkg/export"
	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

// ExportOption customises ExportDocs.
type ExportOption func(*exportConfig)

type exportConfig struct {
	dir     string
	title   string
	formats *format.Registry
}

// WithDir overrides the output directory, export.DefaultDir by default.
func WithDir(dir string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.dir = dir
	}
}

// WithTitle overrides the document heading.
func WithTitle(title string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.title = title
	}
}

// WithFormats resolves CONFIG_DOCS_FORMAT against reg instead of the built-in
// formats.
func WithFormats(reg *format.Registry) ExportOption {
	return func(cfg *exportConfig) {
		cfg.formats = reg
	}
}

// ExportDocs is the per-record test hook: it renders rec in the format named
// by CONFIG_DOCS_FORMAT (after loading .env) and writes
// docs/<RecordName>.<ext>.md relative to the package under test. It returns
// the written path and fails the test on any error.
//
//	func TestServerDocs(t *testing.T) {
//		testsupport.ExportDocs(t, extract.MustRegister(schema.NewRegistry(), Server{}))
//	}
func ExportDocs(t testing.TB, rec *schema.Record, options ...ExportOption) string {
	t.Helper()

	cfg := exportConfig{dir: export.DefaultDir}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := export.LoadDotEnv(); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	strategy, err := export.FormatFromEnv(cfg.formats)
	if err != nil {
		t.Fatalf("select format: %v", err)
	}
	path, err := export.New(cfg.dir).Export(rec, strategy, cfg.title)
	if err != nil {
		t.Fatalf("export %s docs: %v", rec.Name(), err)
	}
	return path
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// AssertGolden compares got against the golden file at path, rewriting the
// file first when UPDATE_GOLDENS is set.
func AssertGolden(t testing.TB, path, got string) {
	t.Helper()
	if WriteMaybeGolden(t, path, []byte(got)) {
		return
	}
	if diff := cmp.Diff(MustReadGoldenString(t, path), got); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", path, diff)
	}
}

// DefaultTimeout bounds contexts returned by Context.
const DefaultTimeout = 30 * time.Second

// Context returns a context that is cancelled when the test ends or after
// DefaultTimeout, whichever comes first.
func Context(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), DefaultTimeout)
	t.Cleanup(cancel)
	return ctx
}
