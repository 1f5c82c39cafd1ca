package export

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const (
	indexTemplate = "templates/index.md.tpl"

	// IndexFile is the name of the generated listing.
	IndexFile = "index.md"

	// DefaultIndexTitle heads the listing when no title is configured.
	DefaultIndexTitle = "Configuration reference"
)

// IndexEntry is one line of the generated listing.
type IndexEntry struct {
	Record  string
	File    string
	Format  string
	Summary string
}

var (
	indexOnce sync.Once
	indexTpl  *pongo2.Template
	indexErr  error
)

func compiledIndex() (*pongo2.Template, error) {
	indexOnce.Do(func() {
		set := pongo2.NewSet("confdocs", pongo2.NewFSLoader(templatesFS))
		indexTpl, indexErr = set.FromFile(indexTemplate)
	})
	return indexTpl, indexErr
}

// RenderIndex produces the markdown listing for entries.
func RenderIndex(title string, entries []IndexEntry) (string, error) {
	tpl, err := compiledIndex()
	if err != nil {
		return "", fmt.Errorf("export: compile index template: %w", err)
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultIndexTitle
	}

	out, err := tpl.Execute(pongo2.Context{
		"title":   title,
		"entries": entries,
	})
	if err != nil {
		return "", fmt.Errorf("export: execute index template: %w", err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// TemplatesFS exposes the embedded templates rooted at their directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}
