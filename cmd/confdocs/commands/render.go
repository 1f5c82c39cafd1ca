package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-confdocs/internal/logfields"
	"github.com/goliatone/go-confdocs/pkg/orchestrator"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	SourceFlags

	Record string `arg:"" help:"Record to render"`
	Title  string `short:"t" help:"Heading override"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	ctx := context.Background()
	orch, _, err := setup(ctx, g, root, r.SourceFlags, "")
	if err != nil {
		return err
	}

	doc, err := orch.Generate(ctx, orchestrator.Request{
		Record: r.Record,
		Format: r.Format,
		Title:  r.Title,
	})
	if err != nil {
		return err
	}

	if r.Output == "" {
		_, err := g.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(r.Output, doc, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Output, err)
	}
	slog.Info("rendered record", logfields.Record(r.Record), logfields.Path(r.Output))
	return nil
}
