// Package schemafile loads hand-written record definitions from YAML or JSON
// documents into a schema.Registry. A document lists records with their
// fields in declaration order:
//
//	records:
//	  - name: Server
//	    export: true
//	    rename_all: snake_case
//	    fields:
//	      - name: ListenAddr
//	        type: string
//	        doc: bind address
//	        value: 127.0.0.1
//	      - name: logging
//	        nested: Logging
//
// `default` carries a pre-rendered value used verbatim; `value` carries a
// typed YAML value that is encoded as TOML value text.
package schemafile
