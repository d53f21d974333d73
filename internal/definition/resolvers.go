package definition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CoreBase is the canonical prefix of base FHIR type definitions.
const CoreBase = "http://hl7.org/fhir/StructureDefinition/"

// CoreResolver synthesizes a definition for any base FHIR type URL.
// The result has a name and type but no snapshot.
type CoreResolver struct{}

// Resolve implements Resolver.
func (CoreResolver) Resolve(_ context.Context, url string) (*StructureDefinition, error) {
	u := canonical(url)

	name, ok := strings.CutPrefix(u, CoreBase)
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}

	return &StructureDefinition{
		ResourceType: ResourceType,
		ID:           name,
		URL:          u,
		Name:         name,
		Type:         name,
	}, nil
}

// Chain returns a resolver that tries each resolver in order.
// Errors other than ErrNotFound stop the chain.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(ctx context.Context, url string) (*StructureDefinition, error) {
		for _, r := range resolvers {
			sd, err := r.Resolve(ctx, url)
			if err == nil {
				return sd, nil
			}

			if !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}

		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	})
}

type cacheEntry struct {
	sd  *StructureDefinition
	err error
}

// CachedResolver memoizes lookups of another resolver, including misses.
type CachedResolver struct {
	next  Resolver
	cache *lru.Cache[string, cacheEntry]
}

// Cached wraps next with an LRU cache holding up to size URLs.
func Cached(next Resolver, size int) (*CachedResolver, error) {
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create definition cache: %w", err)
	}

	return &CachedResolver{next: next, cache: cache}, nil
}

// Resolve implements Resolver. Context errors are never cached.
func (c *CachedResolver) Resolve(ctx context.Context, url string) (*StructureDefinition, error) {
	key := canonical(url)
	if e, ok := c.cache.Get(key); ok {
		return e.sd, e.err
	}

	sd, err := c.next.Resolve(ctx, url)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c.cache.Add(key, cacheEntry{sd: sd, err: err})

	return sd, err
}

// Len returns the number of cached URLs.
func (c *CachedResolver) Len() int {
	return c.cache.Len()
}
