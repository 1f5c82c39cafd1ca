package orchestrator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confdocs/pkg/orchestrator"
)

func TestAdapterRegistry(t *testing.T) {
	reg := orchestrator.NewDefaultAdapterRegistry()
	if diff := cmp.Diff([]string{"openapi", "schemafile"}, reg.List()); diff != "" {
		t.Fatalf("adapters mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(orchestrator.NewOpenAPIAdapter()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := reg.Get(" SchemaFile "); err != nil {
		t.Fatalf("lookup should be case-insensitive: %v", err)
	}
	if _, err := reg.Get(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestAdapterRegistry_Detect(t *testing.T) {
	reg := orchestrator.NewDefaultAdapterRegistry()
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"schema file", "records: []\n", []string{"schemafile"}},
		{"openapi yaml", "openapi: 3.0.3\n", []string{"openapi"}},
		{"openapi json", `{"openapi": "3.1.0"}`, []string{"openapi"}},
		{"both", "openapi: 3.0.3\nrecords: []\n", []string{"openapi", "schemafile"}},
		{"neither", "title: x\n", nil},
		{"not a mapping", "- a\n- b\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, adapter := range reg.Detect("doc.yaml", []byte(tt.raw)) {
				got = append(got, adapter.Name())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("detect mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
