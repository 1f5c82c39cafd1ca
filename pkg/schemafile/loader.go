package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-confdocs/pkg/format"
	"github.com/goliatone/go-confdocs/pkg/schema"
)

// ErrUnresolved is returned when loaded records reference records that were
// never defined.
var ErrUnresolved = errors.New("schemafile: unresolved nested records")

// Parse decodes a YAML or JSON schema document. Unknown keys are rejected.
func Parse(data []byte, path string) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("schemafile: parse %s: %w", path, err)
	}
	return doc, nil
}

// Definitions converts the document into registry definitions, applying each
// record's rename policy and encoding typed values.
func (d Document) Definitions() ([]schema.Definition, error) {
	defs := make([]schema.Definition, 0, len(d.Records))
	for _, spec := range d.Records {
		policy, err := schema.ParseRenamePolicy(spec.RenameAll)
		if err != nil {
			return nil, fmt.Errorf("schemafile: record %s: %w", spec.Name, err)
		}

		b := schema.NewBuilder(spec.Name).Doc(spec.Doc).Rename(policy)
		if spec.Export {
			b.Export()
		}
		for _, field := range spec.Fields {
			opts := []schema.FieldOption{schema.WithDoc(field.Doc)}
			if field.Rename != "" {
				opts = append(opts, schema.WithRename(field.Rename))
			}
			if field.Nested != "" {
				b.Nested(field.Name, field.Nested, opts...)
				continue
			}

			repr := field.Default
			if repr == "" && field.Value != nil {
				repr, err = format.EncodeTOMLValue(field.Value)
				if err != nil {
					return nil, fmt.Errorf("schemafile: record %s field %s: %w", spec.Name, field.Name, err)
				}
			}
			opts = append(opts, schema.WithDefault(repr))
			b.Field(field.Name, field.Type, opts...)
		}
		defs = append(defs, b.Definition())
	}
	return defs, nil
}

// Register parses data and registers every record it defines. A file that
// fails validation registers nothing.
func Register(reg *schema.Registry, data []byte, path string) ([]*schema.Record, error) {
	doc, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	defs, err := doc.Definitions()
	if err != nil {
		return nil, err
	}

	records, err := reg.RegisterAll(defs...)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", path, err)
	}
	return records, nil
}

// LoadFile registers the records defined in a single file and checks that
// every nested reference resolves.
func LoadFile(reg *schema.Registry, path string) ([]*schema.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	records, err := Register(reg, data, filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	if err := CheckResolved(reg); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadFS walks fsys in lexical order and registers every .yaml, .yml and
// .json file. References may cross files.
func LoadFS(reg *schema.Registry, fsys fs.FS) ([]*schema.Record, error) {
	if fsys == nil {
		return nil, errors.New("schemafile: filesystem is required")
	}

	var records []*schema.Record
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", path, err)
		}
		loaded, err := Register(reg, data, path)
		if err != nil {
			return err
		}
		records = append(records, loaded...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := CheckResolved(reg); err != nil {
		return nil, err
	}
	return records, nil
}

// CheckResolved reports nested references to unregistered records.
func CheckResolved(reg *schema.Registry) error {
	if missing := reg.Unresolved(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrUnresolved, strings.Join(missing, ", "))
	}
	return nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
