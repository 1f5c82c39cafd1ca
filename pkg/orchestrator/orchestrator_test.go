package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/orchestrator"
	"github.com/goliatone/go-confdocs/pkg/render"
	"github.com/goliatone/go-confdocs/pkg/schema"
	"github.com/goliatone/go-confdocs/pkg/testsupport"
)

func loaded(t *testing.T, options ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	orch := orchestrator.New(options...)
	if _, err := orch.LoadSource(testsupport.Context(t), filepath.Join("testdata", "app.yaml"), ""); err != nil {
		t.Fatalf("load source: %v", err)
	}
	if err := orch.CheckResolved(); err != nil {
		t.Fatalf("check resolved: %v", err)
	}
	return orch
}

func TestGenerate_MatchesRender(t *testing.T) {
	orch := loaded(t)

	got, err := orch.Generate(testsupport.Context(t), orchestrator.Request{Record: "Server"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	rec, err := orch.Registry().Get("Server")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want, err := render.Render(rec, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("generate mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(want, "# Default: \"127.0.0.1\"\nhost = \"127.0.0.1\"") {
		t.Fatalf("expected host default in:\n%s", want)
	}
	if !strings.Contains(want, "## Tls\n\nCertificate paths.\n\n```toml\n[tls]\n") {
		t.Fatalf("expected tls section in:\n%s", want)
	}
}

func TestGenerate_FormatAndTitle(t *testing.T) {
	orch := loaded(t,
		orchestrator.WithDefaultFormat("ini"),
		orchestrator.WithTitles(map[string]string{"Logging": "Logging settings"}),
	)
	ctx := testsupport.Context(t)

	got, err := orch.Generate(ctx, orchestrator.Request{Record: "Logging"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(string(got), "# Logging settings\n\n```ini\n") {
		t.Fatalf("unexpected document:\n%s", got)
	}

	got, err = orch.Generate(ctx, orchestrator.Request{Record: "Logging", Format: "TOML", Title: "Explicit"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(string(got), "# Explicit\n\n```toml\n") {
		t.Fatalf("unexpected document:\n%s", got)
	}
}

func TestGenerate_Errors(t *testing.T) {
	orch := loaded(t)
	ctx := testsupport.Context(t)

	if _, err := orch.Generate(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for missing record name")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Record: "Missing"}); !errors.Is(err, schema.ErrUnknownRecord) {
		t.Fatalf("expected ErrUnknownRecord, got %v", err)
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Record: "Server", Format: "yaml"}); !errors.Is(err, format.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Generate(cancelled, orchestrator.Request{Record: "Server"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_UnsupportedType(t *testing.T) {
	reg := schema.NewRegistry()
	if _, err := schema.NewBuilder("Broken").Field("addr", "SocketAddr").Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	orch := orchestrator.New(orchestrator.WithRegistry(reg))

	got, err := orch.Generate(testsupport.Context(t), orchestrator.Request{Record: "Broken"})
	if !errors.Is(err, render.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no output, got %q", got)
	}
}

func TestExportAll_WritesFlaggedRecordsAndIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	orch := loaded(t, orchestrator.WithOutputDir(dir), orchestrator.WithIndex("Service settings"))

	paths, err := orch.ExportAll(testsupport.Context(t))
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	want := []string{
		filepath.Join(dir, "Server.toml.md"),
		filepath.Join(dir, "Logging.toml.md"),
		filepath.Join(dir, "index.md"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, "TLS.toml.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("TLS is not flagged for export, stat err = %v", err)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	wantIndex := "# Service settings\n\n- [Server](Server.toml.md): HTTP listener settings.\n- [Logging](Logging.toml.md)\n"
	if diff := cmp.Diff(wantIndex, string(index)); diff != "" {
		t.Fatalf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestExport_SelectedRecordsAndCancellation(t *testing.T) {
	dir := t.TempDir()
	orch := loaded(t, orchestrator.WithOutputDir(dir))

	paths, err := orch.Export(testsupport.Context(t), orchestrator.ExportRequest{Records: []string{"TLS"}, Format: "ini"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "TLS.ini.md")}, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(testsupport.Context(t))
	cancel()
	paths, err = orch.ExportAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %v", paths)
	}
}

func TestLoadSource_DetectsAdapters(t *testing.T) {
	orch := orchestrator.New()
	ctx := testsupport.Context(t)

	records, err := orch.LoadSource(ctx, filepath.Join("testdata", "petstore.yaml"), "")
	if err != nil {
		t.Fatalf("load openapi: %v", err)
	}
	if len(records) != 1 || records[0].Name() != "Store" || !records[0].Exported() {
		t.Fatalf("unexpected records: %v", records)
	}

	if _, err := orch.LoadSource(ctx, filepath.Join("testdata", "unknown.yaml"), ""); err == nil {
		t.Fatalf("expected detection failure")
	}
	if _, err := orch.LoadSource(ctx, filepath.Join("testdata", "unknown.yaml"), "graphql"); err == nil {
		t.Fatalf("expected unknown adapter error")
	}
	if _, err := orch.LoadSource(ctx, filepath.Join("testdata", "missing.yaml"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCheckResolved_ReportsDanglingReferences(t *testing.T) {
	reg := schema.NewRegistry()
	if _, err := schema.NewBuilder("Server").Nested("tls", "TLS").Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := orchestrator.New(orchestrator.WithRegistry(reg)).CheckResolved(); err == nil {
		t.Fatalf("expected unresolved reference error")
	}
}
