package extract

import "github.com/goliatone/go-confdocs/pkg/schema"

// Option configures an extraction run.
type Option func(*config)

type config struct {
	name    string
	tag     string
	policy  schema.RenamePolicy
	export  bool
	encoder func(any) (string, error)
}

// WithName overrides the root record name, which defaults to the Go type name.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// WithKeyTag selects the struct tag carrying serialized keys. Defaults to
// "toml".
func WithKeyTag(tag string) Option {
	return func(cfg *config) {
		if tag != "" {
			cfg.tag = tag
		}
	}
}

// WithRename sets the policy applied to untagged fields of records that do
// not declare their own through Renamer.
func WithRename(policy schema.RenamePolicy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// WithExport flags the root record for file export.
func WithExport() Option {
	return func(cfg *config) {
		cfg.export = true
	}
}

// WithDefaultEncoder replaces the encoder turning default values into text.
// The default writes TOML value syntax.
func WithDefaultEncoder(fn func(any) (string, error)) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.encoder = fn
		}
	}
}
