// Package orchestrator wires the schema source → registry → format → render
// → export pipeline behind a single entry point. Sources (schema files,
// OpenAPI documents) are loaded through pluggable adapters, records flagged
// for export can be written in bulk, and every dependency can be injected.
package orchestrator
