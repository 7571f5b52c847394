// Package goast exposes the Go source adapter: struct declarations marked
// with the //buildergen:builder directive (or named explicitly) become record
// descriptors. The go/parser based implementation lives under
// internal/goast; construction helpers live in the top-level buildergen
// package to avoid import cycles.
package goast
