package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/record"
)

// resolveDocument returns the request document, loading it when only a
// source was given.
func (g *Generator) resolveDocument(ctx context.Context, req Request) (record.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return record.Document{}, errors.New("generator: source or document is required")
	}
	doc, err := g.loader.Load(ctx, req.Source)
	if err != nil {
		return record.Document{}, fmt.Errorf("generator: load document: %w", err)
	}
	return doc, nil
}

// resolveAdapter picks the adapter named by the request, else the one that
// detects the payload, else the configured default.
func (g *Generator) resolveAdapter(req Request, doc record.Document) (record.Adapter, error) {
	if g.adapters == nil {
		return nil, errors.New("generator: adapter registry is nil")
	}

	if name := strings.TrimSpace(req.Adapter); name != "" {
		return g.adapters.Get(name)
	}

	matches := g.adapters.Detect(doc.Source(), doc.Raw())
	switch len(matches) {
	case 0:
		if g.defaultAdapter == "" {
			return nil, fmt.Errorf("generator: unable to detect the format of %s", doc.Location())
		}
		return g.adapters.Get(g.defaultAdapter)
	case 1:
		return matches[0], nil
	default:
		if g.defaultAdapter != "" {
			for _, adapter := range matches {
				if normalizeAdapterName(adapter.Name()) == normalizeAdapterName(g.defaultAdapter) {
					return adapter, nil
				}
			}
		}
		return nil, fmt.Errorf("generator: multiple adapters matched %s (%s), specify one", doc.Location(), adapterNames(matches))
	}
}

// candidates lists the records a user may pick from.
func candidates(ctx context.Context, adapter record.Adapter, doc record.Document) ([]string, error) {
	if lister, ok := adapter.(record.Lister); ok {
		return lister.Candidates(ctx, doc)
	}
	descs, err := adapter.Records(ctx, doc, record.Selection{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(descs))
	for _, desc := range descs {
		names = append(names, desc.Name)
	}
	return names, nil
}

func adapterNames(adapters []record.Adapter) string {
	names := make([]string, 0, len(adapters))
	for _, adapter := range adapters {
		if adapter == nil {
			continue
		}
		if name := strings.TrimSpace(adapter.Name()); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}
