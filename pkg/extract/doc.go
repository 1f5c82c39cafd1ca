// Package extract builds schema records from Go struct types using
// reflection. It stands in for source-level annotation processing: keys come
// from `toml` tags (or the record's rename policy), documentation from `doc`
// tags or the FieldDocumenter interface, and defaults from `default` tags or
// a Defaulter implementation. Struct-typed fields become nested records
// registered alongside the root.
//
//	type Logging struct {
//		Level string `toml:"level" doc:"log level" default:"info"`
//	}
//
//	type Server struct {
//		Address string  `toml:"address" doc:"bind address"`
//		Logging Logging `toml:"logging"`
//	}
//
//	rec, err := extract.Register(reg, Server{}, extract.WithExport())
package extract
