package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

const maxHeadingLevel = 6

// Render produces the markdown document for root. The result ends with a
// single newline. On error the returned string is empty.
func Render(root *schema.Record, opts Options) (string, error) {
	if root == nil {
		return "", errors.New("render: root record is required")
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = root.Name()
	}

	w := &writer{strategy: opts.strategy()}
	w.section(heading(1, title))
	w.section(paragraph(root.DocLines()))

	if err := w.record(root, nil, 1); err != nil {
		return "", err
	}
	return w.String(), nil
}

type writer struct {
	strategy format.Strategy
	sections []string
}

func (w *writer) section(text string) {
	if text == "" {
		return
	}
	w.sections = append(w.sections, text)
}

func (w *writer) String() string {
	return strings.Join(w.sections, "\n\n") + "\n"
}

// record emits the code block for rec's scalar fields, then one subsection
// per nested field in declaration order.
func (w *writer) record(rec *schema.Record, path []string, depth int) error {
	fields := rec.Fields()

	block, err := w.codeBlock(rec, fields, path)
	if err != nil {
		return err
	}
	w.section(block)

	for _, field := range fields {
		if !field.IsNested() {
			continue
		}
		nested, err := rec.Resolve(field)
		if err != nil {
			return fmt.Errorf("render: record %q: %w", rec.Name(), err)
		}

		w.section(heading(depth+1, Humanize(field.Name)))
		doc := field.DocLines()
		if len(doc) == 0 {
			doc = nested.DocLines()
		}
		w.section(paragraph(doc))

		childPath := append(append([]string(nil), path...), field.Name)
		if err := w.record(nested, childPath, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (w *writer) codeBlock(rec *schema.Record, fields []schema.Field, path []string) (string, error) {
	var lines []string
	for _, field := range fields {
		if field.IsNested() {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		for _, line := range field.DocLines() {
			lines = append(lines, w.strategy.CommentLine(line))
		}
		for i, line := range field.DefaultLines() {
			if i == 0 {
				line = "Default: " + line
			}
			lines = append(lines, w.strategy.CommentLine(line))
		}

		value, err := w.strategy.ValueRepr(field.Type, field.Default)
		if err != nil {
			return "", &UnsupportedTypeError{
				Record: rec.Name(),
				Field:  field.Name,
				Type:   field.Type,
				Format: w.strategy.Name(),
				Err:    err,
			}
		}
		lines = append(lines, w.strategy.KeyValue(field.Name, value))
	}
	if len(lines) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("```" + w.strategy.Extension() + "\n")
	if header := w.strategy.TableHeader(path); header != "" {
		b.WriteString(header + "\n\n")
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	b.WriteString("```")
	return b.String(), nil
}

func heading(level int, text string) string {
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	return strings.Repeat("#", level) + " " + text
}

func paragraph(lines []string) string {
	return strings.Join(lines, "\n")
}
