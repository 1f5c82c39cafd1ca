package confdocs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-confdocs/pkg/format"
)

type exampleLimits struct {
	Burst int `toml:"burst" doc:"Requests allowed above the rate." default:"10"`
}

type exampleServer struct {
	Host   string        `toml:"host" doc:"Interface to bind." default:"localhost"`
	Limits exampleLimits `toml:"limits"`
}

func TestRenderStruct(t *testing.T) {
	doc, err := RenderStruct(exampleServer{}, RenderOptions{Title: "Server"})
	if err != nil {
		t.Fatalf("RenderStruct: %v", err)
	}
	for _, want := range []string{
		"# Server\n",
		"# Interface to bind.\n# Default: \"localhost\"\nhost = \"localhost\"\n",
		"## Limits\n",
		"[limits]\n\n# Requests allowed above the rate.\n# Default: 10\nburst = 10\n",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in:\n%s", want, doc)
		}
	}

	if _, err := RenderStruct(42, RenderOptions{}); err == nil {
		t.Fatalf("expected error for non-struct value")
	}
}

func TestGenerateFromSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	body := "records:\n  - name: App\n    fields:\n      - name: name\n        type: string\n        value: demo\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := GenerateFromSource(context.Background(), path, Request{Record: "App", Format: "ini"})
	if err != nil {
		t.Fatalf("GenerateFromSource: %v", err)
	}
	want := "# App\n\n```ini\n; Default: \"demo\"\nname = \"demo\"\n```\n"
	if string(out) != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "index.md.tpl")
	if err != nil {
		t.Fatalf("expected index template to be readable: %v", err)
	}
	if !strings.Contains(string(data), "entries") {
		t.Fatalf("unexpected template content:\n%s", data)
	}
}

func TestNewOpenAPILoader(t *testing.T) {
	if NewOpenAPILoader() == nil {
		t.Fatalf("expected loader")
	}
	if !NewOrchestrator().Formats().Has(format.DefaultName) {
		t.Fatalf("default orchestrator should know %s", format.DefaultName)
	}
}
