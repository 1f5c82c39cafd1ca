package commands

import (
	"context"
	"errors"

	"github.com/goliatone/go-confdocs/internal/picker"
	"github.com/goliatone/go-confdocs/pkg/orchestrator"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	SourceFlags

	Records     []string `arg:"" optional:"" help:"Records to export (default: every record flagged for export)"`
	Output      string   `short:"o" help:"Output directory (overrides config and CONFIG_DOCS_OUTPUT_DIR)" type:"path"`
	Interactive bool     `short:"i" help:"Pick records and format interactively"`
}

func (e *ExportCmd) Run(g *Global, root *CLI) error {
	ctx := context.Background()
	orch, cfg, err := setup(ctx, g, root, e.SourceFlags, e.Output)
	if err != nil {
		return err
	}

	req := orchestrator.ExportRequest{Records: e.Records, Format: cfg.Format}
	if e.Interactive {
		req, err = e.pick(ctx, g.Picker, orch, req)
		if err != nil {
			return err
		}
	}

	var paths []string
	if len(req.Records) == 0 {
		paths, err = orch.ExportAll(ctx)
	} else {
		paths, err = orch.Export(ctx, req)
	}
	for _, path := range paths {
		printf(g.Stdout, "%s\n", path)
	}
	return err
}

func (e *ExportCmd) pick(ctx context.Context, p picker.Picker, orch *orchestrator.Orchestrator, req orchestrator.ExportRequest) (orchestrator.ExportRequest, error) {
	if p == nil {
		return req, errors.New("interactive mode needs a terminal picker")
	}

	var names []string
	var defaults []int
	for i, rec := range orch.Registry().Records() {
		names = append(names, rec.Name())
		if rec.Exported() {
			defaults = append(defaults, i)
		}
	}
	if len(names) == 0 {
		return req, errors.New("no records loaded")
	}
	chosen, err := p.MultiSelect(ctx, picker.SelectConfig{
		Message:  "Records to export",
		Options:  names,
		Defaults: defaults,
	})
	if err != nil {
		return req, err
	}
	req.Records = picker.Pick(names, chosen)

	formats := orch.Formats().List()
	current := 0
	for i, name := range formats {
		if name == req.Format {
			current = i
		}
	}
	idx, err := p.Select(ctx, picker.SelectConfig{
		Message:      "Output format",
		Options:      formats,
		DefaultIndex: current,
	})
	if err != nil {
		return req, err
	}
	if idx >= 0 && idx < len(formats) {
		req.Format = formats[idx]
	}
	return req, nil
}
