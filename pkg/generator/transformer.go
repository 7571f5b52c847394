package generator

import (
	"context"
	"fmt"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// Transformer rewrites a record descriptor after introspection and before
// classification. The result is validated again, so a transformer cannot
// introduce unnamed or colliding fields.
type Transformer interface {
	Transform(ctx context.Context, desc *record.Descriptor) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, desc *record.Descriptor) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, desc *record.Descriptor) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, desc)
}

func (g *Generator) applyTransformers(ctx context.Context, desc *record.Descriptor) error {
	for _, t := range g.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, desc); err != nil {
			return fmt.Errorf("generator: transform %s: %w", desc.Name, err)
		}
	}
	if len(g.transformers) > 0 {
		return desc.Validate()
	}
	return nil
}
