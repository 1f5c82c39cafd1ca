package testsupport_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-confdocs/pkg/export"
	"github.com/goliatone/go-confdocs/pkg/schema"
	"github.com/goliatone/go-confdocs/pkg/testsupport"
)

func TestExportDocs_UsesEnvironmentFormat(t *testing.T) {
	reg := schema.NewRegistry()
	rec, err := schema.NewBuilder("Logging").
		Field("level", "string", schema.WithDefault(`"info"`)).
		Register(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Setenv(export.EnvFormat, "ini")
	dir := t.TempDir()
	path := testsupport.ExportDocs(t, rec, testsupport.WithDir(dir), testsupport.WithTitle("Logging settings"))

	if want := filepath.Join(dir, "Logging.ini.md"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc := string(data)
	if !strings.HasPrefix(doc, "# Logging settings\n") {
		t.Fatalf("unexpected heading in:\n%s", doc)
	}
	if !strings.Contains(doc, "```ini\n; Default: \"info\"\nlevel = \"info\"\n```") {
		t.Fatalf("expected ini block in:\n%s", doc)
	}
}

func TestAssertGolden(t *testing.T) {
	t.Setenv("UPDATE_GOLDENS", "")
	path := filepath.Join(t.TempDir(), "golden.md")
	if err := os.WriteFile(path, []byte("# Golden\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	testsupport.AssertGolden(t, path, "# Golden\n")

	t.Setenv("UPDATE_GOLDENS", "1")
	fresh := filepath.Join(t.TempDir(), "sub", "fresh.md")
	testsupport.AssertGolden(t, fresh, "content\n")
	if got := testsupport.MustReadGoldenString(t, fresh); got != "content\n" {
		t.Fatalf("golden not written: %q", got)
	}
}

func TestContext_HasDeadline(t *testing.T) {
	ctx := testsupport.Context(t)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining <= 0 || remaining > testsupport.DefaultTimeout {
		t.Fatalf("unexpected remaining time %s", remaining)
	}
	if err := ctx.Err(); err != nil {
		t.Fatalf("context already done: %v", err)
	}
}
