package format_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confdocs/pkg/format"
)

func TestClassify(t *testing.T) {
	tests := map[string]format.ValueKind{
		"string":            format.KindString,
		" String ":          format.KindString,
		"u16":               format.KindInteger,
		"int64":             format.KindInteger,
		"f64":               format.KindFloat,
		"bool":              format.KindBool,
		"*bool":             format.KindBool,
		"Option<u32>":       format.KindInteger,
		"time.Duration":     format.KindDuration,
		"time.Time":         format.KindDatetime,
		"[]string":          format.KindArray,
		"Vec<String>":       format.KindArray,
		"map[string]int":    format.KindTable,
		"HashMap<K, V>":     format.KindTable,
		"SocketAddr":        format.KindUnknown,
		"":                  format.KindUnknown,
		"Option<*[]string>": format.KindArray,
	}
	for label, want := range tests {
		if got := format.Classify(label); got != want {
			t.Errorf("Classify(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestTOML(t *testing.T) {
	toml := format.TOML{}

	if got := toml.CommentLine("log level"); got != "# log level" {
		t.Fatalf("comment = %q", got)
	}
	if got := toml.CommentLine(""); got != "#" {
		t.Fatalf("empty comment = %q", got)
	}
	if got := toml.TableHeader(nil); got != "" {
		t.Fatalf("root header = %q", got)
	}
	if got := toml.TableHeader([]string{"server", "tls"}); got != "[server.tls]" {
		t.Fatalf("header = %q", got)
	}
	if got := toml.TableHeader([]string{"odd key", "x"}); got != `["odd key".x]` {
		t.Fatalf("quoted header = %q", got)
	}
	if got := toml.KeyValue("level", `"info"`); got != `level = "info"` {
		t.Fatalf("key value = %q", got)
	}
	if got := toml.KeyValue("a.b", "1"); got != `"a.b" = 1` {
		t.Fatalf("quoted key = %q", got)
	}
}

func TestTOML_ValueRepr(t *testing.T) {
	toml := format.TOML{}
	tests := []struct {
		typ, def, want string
	}{
		{"string", `"info"`, `"info"`},
		{"string", "", `""`},
		{"u16", "", "0"},
		{"f32", "", "0.0"},
		{"bool", "", "false"},
		{"time.Duration", "", `"0s"`},
		{"[]string", "", "[]"},
		{"map[string]string", "", "{}"},
		{"SocketAddr", `"0.0.0.0:80"`, `"0.0.0.0:80"`},
	}
	for _, tt := range tests {
		got, err := toml.ValueRepr(tt.typ, tt.def)
		if err != nil {
			t.Fatalf("ValueRepr(%q, %q): %v", tt.typ, tt.def, err)
		}
		if got != tt.want {
			t.Errorf("ValueRepr(%q, %q) = %q, want %q", tt.typ, tt.def, got, tt.want)
		}
	}

	if _, err := toml.ValueRepr("SocketAddr", ""); !errors.Is(err, format.ErrNoPlaceholder) {
		t.Fatalf("expected ErrNoPlaceholder, got %v", err)
	}
}

func TestINI(t *testing.T) {
	ini := format.INI{}
	if got := ini.CommentLine("x"); got != "; x" {
		t.Fatalf("comment = %q", got)
	}
	if got := ini.TableHeader([]string{"a", "b"}); got != "[a.b]" {
		t.Fatalf("header = %q", got)
	}
	if got, _ := ini.ValueRepr("bool", ""); got != "false" {
		t.Fatalf("bool placeholder = %q", got)
	}
	if _, err := ini.ValueRepr("[]string", ""); !errors.Is(err, format.ErrNoPlaceholder) {
		t.Fatalf("expected ErrNoPlaceholder for arrays, got %v", err)
	}
	if got, err := ini.ValueRepr("[]string", "a,b"); err != nil || got != "a,b" {
		t.Fatalf("default should win: %q, %v", got, err)
	}
}

func TestRegistry(t *testing.T) {
	reg := format.NewDefaultRegistry()

	if diff := cmp.Diff([]string{"ini", "toml"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	strategy, err := reg.Get(" TOML ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if strategy.Name() != "toml" {
		t.Fatalf("strategy = %q", strategy.Name())
	}

	def, err := reg.Get("")
	if err != nil || def.Name() != format.DefaultName {
		t.Fatalf("empty name should select default: %v, %v", def, err)
	}

	if _, err := reg.Get("yaml"); !errors.Is(err, format.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err := reg.Register(format.TOML{}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if !reg.Has("ini") || reg.Has("json") {
		t.Fatalf("Has mismatch")
	}
}
