package orchestrator

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-confdocs/pkg/openapi"
	"github.com/goliatone/go-confdocs/pkg/schema"
	"github.com/goliatone/go-confdocs/pkg/schemafile"
)

// topLevelKeys decodes the keys of a YAML or JSON mapping document. Anything
// else yields nil.
func topLevelKeys(raw []byte) map[string]any {
	var keys map[string]any
	if err := yaml.Unmarshal(raw, &keys); err != nil {
		return nil
	}
	return keys
}

type schemaFileAdapter struct{}

// NewSchemaFileAdapter reads confdocs schema documents (a top-level
// "records" list).
func NewSchemaFileAdapter() SourceAdapter {
	return schemaFileAdapter{}
}

func (schemaFileAdapter) Name() string { return "schemafile" }

func (schemaFileAdapter) Detect(_ string, raw []byte) bool {
	_, ok := topLevelKeys(raw)["records"]
	return ok
}

func (schemaFileAdapter) Load(ctx context.Context, reg *schema.Registry, path string, raw []byte) ([]*schema.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return schemafile.Register(reg, raw, path)
}

type openAPIAdapter struct {
	options []openapi.ConvertOption
}

// NewOpenAPIAdapter reads OpenAPI 3 documents, converting component schemas
// with the given options.
func NewOpenAPIAdapter(options ...openapi.ConvertOption) SourceAdapter {
	return openAPIAdapter{options: options}
}

func (openAPIAdapter) Name() string { return "openapi" }

func (openAPIAdapter) Detect(_ string, raw []byte) bool {
	_, ok := topLevelKeys(raw)["openapi"]
	return ok
}

func (a openAPIAdapter) Load(ctx context.Context, reg *schema.Registry, path string, raw []byte) ([]*schema.Record, error) {
	doc, err := openapi.NewDocument(openapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, err
	}
	spec, err := openapi.NewLoader().Parse(ctx, doc)
	if err != nil {
		return nil, err
	}
	return openapi.Records(reg, spec, a.options...)
}
