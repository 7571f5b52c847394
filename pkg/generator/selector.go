package generator

import "context"

// Selector lets a user pick which records of a document to generate.
type Selector interface {
	Select(ctx context.Context, location string, candidates []string) ([]string, error)
}

// SelectorFunc adapts plain functions to the Selector interface.
type SelectorFunc func(ctx context.Context, location string, candidates []string) ([]string, error)

// Select executes the wrapped function.
func (fn SelectorFunc) Select(ctx context.Context, location string, candidates []string) ([]string, error) {
	return fn(ctx, location, candidates)
}
