package pokedex

import (
	"context"
	"log"
)

// Source is one lookup capability in the resolution chain. Implementations
// return any error to signal "not found here"; the resolver falls through
// to the next source.
type Source interface {
	Lookup(ctx context.Context, query string) (*Record, error)
}

// Resolver tries an ordered chain of sources (official catalog first,
// custom store second) and memoizes hits. Adding a third source is a
// matter of appending to the chain.
type Resolver struct {
	sources []Source
	cache   *Cache
}

// NewResolver creates a resolver over the given sources, consulted in
// order. A nil cache disables memoization.
func NewResolver(cache *Cache, sources ...Source) *Resolver {
	return &Resolver{sources: sources, cache: cache}
}

// Resolve looks a query up against each source in turn. The query is
// normalized to its lowercase string form first. Callers validate range
// and emptiness before calling; resolution itself accepts anything.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Record, error) {
	key := CacheKey(query)

	if r.cache != nil {
		if record := r.cache.Get(key); record != nil {
			return record, nil
		}
	}

	for _, source := range r.sources {
		record, err := source.Lookup(ctx, key)
		if err == nil {
			if r.cache != nil {
				r.cache.Put(key, record)
			}
			return record, nil
		}
		if IsCancelled(err) {
			// A superseded operation must stop, not fall through
			return nil, err
		}
		log.Printf("[Resolver] source miss for %q: %v", key, err)
	}

	return nil, &NotFoundError{Query: query}
}
