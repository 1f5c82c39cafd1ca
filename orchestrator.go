// Package confdocs renders reference documentation for configuration
// records. The root package offers shortcuts over the pkg/ packages for the
// common cases: documenting a Go struct, or loading schema sources and
// rendering through the orchestrator.
package confdocs

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-confdocs/pkg/export"
	"github.com/goliatone/go-confdocs/pkg/extract"
	"github.com/goliatone/go-confdocs/pkg/openapi"
	"github.com/goliatone/go-confdocs/pkg/orchestrator"
	"github.com/goliatone/go-confdocs/pkg/render"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

// RenderOptions aliases render.Options for callers of the root package.
type RenderOptions = render.Options

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewOpenAPILoader constructs the kin-openapi backed document loader.
func NewOpenAPILoader(options ...openapi.LoaderOption) *openapi.Loader {
	return openapi.NewLoader(options...)
}

// RenderStruct reflects over value's struct type and renders the resulting
// record. Nested struct types are documented as subsections.
func RenderStruct(value any, opts RenderOptions, options ...extract.Option) (string, error) {
	rec, err := extract.Register(schema.NewRegistry(), value, options...)
	if err != nil {
		return "", err
	}
	return render.Render(rec, opts)
}

// GenerateFromSource loads a schema file or OpenAPI document and renders the
// requested record. The source type is detected from the payload.
func GenerateFromSource(ctx context.Context, path string, req Request, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	if _, err := gen.LoadSource(ctx, path, ""); err != nil {
		return nil, err
	}
	if err := gen.CheckResolved(); err != nil {
		return nil, err
	}
	return gen.Generate(ctx, req)
}

// EmbeddedTemplates exposes the built-in export templates so callers can
// reuse or extend them.
func EmbeddedTemplates() fs.FS {
	return export.TemplatesFS()
}
