package openapi_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confdocs/pkg/openapi"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

func loadFixture(t *testing.T) *openapi3.T {
	t.Helper()
	spec, err := openapi.NewLoader().Load(context.Background(), openapi.SourceFromFile(filepath.Join("testdata", "service.yaml")))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return spec
}

func TestRecords_ConvertsComponents(t *testing.T) {
	reg := schema.NewRegistry()
	records, err := openapi.Records(reg, loadFixture(t))
	if err != nil {
		t.Fatalf("Records: %v", err)
	}

	var names []string
	for _, rec := range records {
		names = append(names, rec.Name())
	}
	if diff := cmp.Diff([]string{"Server", "TLS"}, names); diff != "" {
		t.Fatalf("roots mismatch (-want +got):\n%s", diff)
	}

	server := records[0]
	if got, want := server.Doc(), "Settings for the HTTP listener."; got != want {
		t.Fatalf("server doc = %q, want %q", got, want)
	}
	if !server.Exported() {
		t.Fatalf("server should be marked for export")
	}

	wantFields := []schema.Field{
		{Name: "host", Type: "string", Doc: "Interface to bind.", Default: `"127.0.0.1"`},
		{Name: "limits", Type: "ServerLimits", Doc: "Request limits.", Nested: "ServerLimits"},
		{Name: "mode", Type: "string", Doc: "Allowed values: release, debug", Default: `"release"`},
		{Name: "port", Type: "integer", Default: "8080"},
		{Name: "tags", Type: "[]string", Default: `["a", "b"]`},
		{Name: "timeout", Type: "time.Duration"},
		{Name: "tls", Type: "TLS", Nested: "TLS"},
	}
	if diff := cmp.Diff(wantFields, server.Fields()); diff != "" {
		t.Fatalf("server fields mismatch (-want +got):\n%s", diff)
	}

	tls := records[1]
	if got, want := tls.Doc(), "Certificate & key paths."; got != want {
		t.Fatalf("tls doc = %q, want %q", got, want)
	}
	wantTLS := []schema.Field{
		{Name: "cert", Type: "string"},
		{Name: "labels", Type: "map[string]string"},
	}
	if diff := cmp.Diff(wantTLS, tls.Fields()); diff != "" {
		t.Fatalf("tls fields mismatch (-want +got):\n%s", diff)
	}

	limits, err := reg.Get("ServerLimits")
	if err != nil {
		t.Fatalf("inline object not registered: %v", err)
	}
	if diff := cmp.Diff([]schema.Field{{Name: "burst", Type: "integer", Default: "10"}}, limits.Fields()); diff != "" {
		t.Fatalf("limits fields mismatch (-want +got):\n%s", diff)
	}
	if missing := reg.Unresolved(); len(missing) != 0 {
		t.Fatalf("unexpected unresolved references: %v", missing)
	}
}

func TestRecords_WithSchemasAndRename(t *testing.T) {
	reg := schema.NewRegistry()
	records, err := openapi.Records(reg, loadFixture(t),
		openapi.WithSchemas("TLS"),
		openapi.WithRename(schema.RenameUppercase),
	)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].Name() != "TLS" {
		t.Fatalf("expected only TLS, got %v", records)
	}
	if got := records[0].Fields()[0].Name; got != "CERT" {
		t.Fatalf("renamed key = %q, want CERT", got)
	}
	if _, ok := reg.Lookup("Server"); ok {
		t.Fatalf("Server should not be registered when not selected")
	}
}

func TestRecords_RejectsNonObjectSelection(t *testing.T) {
	_, err := openapi.Records(schema.NewRegistry(), loadFixture(t), openapi.WithSchemas("Version"))
	if err == nil {
		t.Fatalf("expected error for scalar component")
	}
	_, err = openapi.Records(schema.NewRegistry(), loadFixture(t), openapi.WithSchemas("Missing"))
	if err == nil {
		t.Fatalf("expected error for unknown component")
	}
}

func TestRecords_CyclicReferences(t *testing.T) {
	const doc = `openapi: 3.0.3
info: {title: cycle, version: "1"}
paths: {}
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: '#/components/schemas/B'
    B:
      type: object
      properties:
        a:
          $ref: '#/components/schemas/A'
`
	fsys := fstest.MapFS{"cycle.yaml": {Data: []byte(doc)}}
	spec, err := openapi.NewLoader(openapi.WithFileSystem(fsys)).Load(context.Background(), openapi.SourceFromFS("cycle.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	reg := schema.NewRegistry()
	_, err = openapi.Records(reg, spec)
	if !errors.Is(err, schema.ErrCyclicSchema) {
		t.Fatalf("expected ErrCyclicSchema, got %v", err)
	}
	if names := reg.Names(); len(names) != 0 {
		t.Fatalf("cyclic components left records behind: %v", names)
	}
}

func TestRecords_NoComponents(t *testing.T) {
	_, err := openapi.Records(schema.NewRegistry(), &openapi3.T{})
	if !errors.Is(err, openapi.ErrNoComponents) {
		t.Fatalf("expected ErrNoComponents, got %v", err)
	}
}

func TestLoader_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFS("x.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
	if _, err := openapi.NewLoader().Load(ctx, openapi.SourceFromFile(filepath.Join(t.TempDir(), "missing.yaml"))); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := openapi.NewLoader().Load(cancelled, openapi.SourceFromFile("testdata/service.yaml")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
