package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoaderOptions configures how documents are read and parsed.
type LoaderOptions struct {
	// FileSystem backs SourceFromFS locations.
	FileSystem fs.FS

	// AllowExternalRefs lets kin-openapi follow $ref pointers outside the
	// document. Off by default so loading never touches the network.
	AllowExternalRefs bool

	// Validate runs the kin-openapi document validator after loading.
	// Component-only documents fail validation, so it defaults to false.
	Validate bool
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for SourceFromFS.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithExternalRefs toggles resolution of external $ref pointers.
func WithExternalRefs(enabled bool) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowExternalRefs = enabled
	}
}

// WithValidation toggles document validation.
func WithValidation(enabled bool) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Validate = enabled
	}
}

// Loader reads OpenAPI documents and hands back parsed kin-openapi models.
type Loader struct {
	options LoaderOptions
}

// NewLoader constructs a Loader from the supplied options.
func NewLoader(options ...LoaderOption) *Loader {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return &Loader{options: cfg}
}

// Read fetches the raw payload for src.
func (l *Loader) Read(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if l.options.FileSystem == nil {
			return Document{}, errors.New("openapi loader: filesystem is not configured")
		}
		data, err = fs.ReadFile(l.options.FileSystem, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, fmt.Errorf("openapi loader: read %s: %w", src.Location(), err)
	}
	return NewDocument(src, data)
}

// Parse loads doc into a kin-openapi model.
func (l *Loader) Parse(ctx context.Context, doc Document) (*openapi3.T, error) {
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi loader: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: l.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: load %s: %w", doc.Location(), err)
	}
	if l.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi loader: validate %s: %w", doc.Location(), err)
		}
	}
	return spec, nil
}

// Load reads and parses src in one step.
func (l *Loader) Load(ctx context.Context, src Source) (*openapi3.T, error) {
	doc, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	return l.Parse(ctx, doc)
}
