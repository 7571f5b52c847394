// Package template defines the seam the emitter renders Go source through.
// The pongo2-backed implementation lives in gotemplate.
package template
