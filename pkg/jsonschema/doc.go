// Package jsonschema exposes the JSON Schema adapter. Every object schema
// under $defs or definitions becomes a declared record, as does a root
// schema carrying a title. Non-required and nullable properties are
// optional fields. Documents may be JSON or YAML.
package jsonschema
