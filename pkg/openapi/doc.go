// Package openapi exposes the OpenAPI adapter: every object schema under
// components.schemas becomes a declared record whose non-required properties
// are optional fields. The kin-openapi based implementation lives under
// internal/openapi to keep that dependency hidden from consumers.
package openapi
