package commands

import (
	"context"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-confdocs/pkg/format"
)

// FormatsCmd implements the 'formats' command.
type FormatsCmd struct{}

func (f *FormatsCmd) Run(g *Global) error {
	reg := g.formats()
	w := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	printf(w, "NAME\tEXTENSION\tDEFAULT\n")
	for _, name := range reg.List() {
		strategy, err := reg.Get(name)
		if err != nil {
			return err
		}
		marker := ""
		if name == format.DefaultName {
			marker = "yes"
		}
		printf(w, "%s\t%s\t%s\n", strategy.Name(), strategy.Extension(), marker)
	}
	return w.Flush()
}

// RecordsCmd implements the 'records' command.
type RecordsCmd struct {
	SourceFlags
}

func (r *RecordsCmd) Run(g *Global, root *CLI) error {
	orch, _, err := setup(context.Background(), g, root, r.SourceFlags, "")
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	printf(w, "RECORD\tFIELDS\tEXPORT\tNESTED\n")
	for _, rec := range orch.Registry().Records() {
		var nested []string
		for _, field := range rec.Fields() {
			if field.IsNested() {
				nested = append(nested, field.Nested)
			}
		}
		export := ""
		if rec.Exported() {
			export = "yes"
		}
		printf(w, "%s\t%d\t%s\t%s\n", rec.Name(), len(rec.Fields()), export, strings.Join(nested, ","))
	}
	return w.Flush()
}
