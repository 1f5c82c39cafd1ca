package render

import "github.com/goliatone/go-confdocs/pkg/format"

// Options configure a single Render call.
type Options struct {
	// Format selects the syntax used for code blocks. Nil selects TOML.
	Format format.Strategy
	// Title overrides the top-level heading, which defaults to the root
	// record's name.
	Title string
}

func (o Options) strategy() format.Strategy {
	if o.Format == nil {
		return format.TOML{}
	}
	return o.Format
}
