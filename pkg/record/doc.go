// Package record exposes the public contracts shared by every stage of the
// builder generation pipeline: sources and documents handed to loaders, the
// descriptor types flowing from introspection through classification and
// synthesis into emission, and the adapter interface implemented by each
// structural-description format (Go source, YAML descriptors, OpenAPI, JSON Schema).
// Implementations live under internal/ and the format packages so callers
// only depend on these types.
package record
