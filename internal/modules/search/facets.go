package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"traveladdicts/internal/cache"
	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
)

const facetsCacheKey = "search:facets"

func ptr[T any](v T) *T { return &v }

// builtinFacets is the filter table the site ships with. The labels and bounds are what
// the frontend dropdowns match against, so they must not drift.
func builtinFacets() domain.Facets {
	return domain.Facets{
		Continents: []string{"Africa", "Asia", "Europe", "North America", "South America", "Oceania", "Antarctica"},
		Categories: []string{"Adventure", "Cultural", "Wildlife", "Beach", "City Break", "Luxury", "Family", "Honeymoon"},
		PriceRanges: []domain.PriceBucket{
			{Label: "Under $1,000", Min: 0, Max: ptr[int64](100000)},
			{Label: "$1,000 - $2,500", Min: 100000, Max: ptr[int64](250000)},
			{Label: "$2,500 - $5,000", Min: 250000, Max: ptr[int64](500000)},
			{Label: "$5,000+", Min: 500000},
		},
		Durations: []domain.DurationBucket{
			{Label: "1-3 days", MinDays: 1, MaxDays: ptr(3)},
			{Label: "4-7 days", MinDays: 4, MaxDays: ptr(7)},
			{Label: "8-14 days", MinDays: 8, MaxDays: ptr(14)},
			{Label: "15+ days", MinDays: 15},
		},
		Seasons:  []string{"Spring", "Summer", "Autumn", "Winter"},
		Features: []string{"All Inclusive", "Guided Tours", "Airport Transfer", "Meals Included", "Small Group", "Wi-Fi"},
	}
}

// FacetProvider serves the enumerated filter values. It never needs the network: the
// built-in table (optionally overridden from a YAML file) is always available, and a
// configured remote source only replaces it while that source answers.
type FacetProvider struct {
	base domain.Facets

	remote graphql.Runner
	store  cache.Store
	ttl    time.Duration
}

type FacetOption func(*FacetProvider)

// WithRemoteFacets asks the travel API for the filter options, caching its answer.
func WithRemoteFacets(remote graphql.Runner, store cache.Store, ttl time.Duration) FacetOption {
	return func(p *FacetProvider) {
		p.remote = remote
		p.store = store
		p.ttl = ttl
	}
}

// NewFacetProvider loads the built-in table and applies the YAML file at path, if any.
// Lists present in the file replace the built-in ones; absent lists are kept.
func NewFacetProvider(path string, opts ...FacetOption) (*FacetProvider, error) {
	p := &FacetProvider{base: builtinFacets()}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read facets file: %w", err)
		}
		var override domain.Facets
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("parse facets file %s: %w", path, err)
		}
		p.base = mergeFacets(p.base, override)
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *FacetProvider) Facets(ctx context.Context) domain.Facets {
	if p.remote == nil {
		return cloneFacets(p.base)
	}

	var cached domain.Facets
	if p.store != nil {
		if ok, err := p.store.Get(ctx, facetsCacheKey, &cached); err == nil && ok {
			return cached
		}
	}

	var resp struct {
		SearchFilters domain.Facets `json:"searchFilters"`
	}
	if err := p.remote.Request(ctx, queries.SearchFilterOptions, nil, nil, &resp); err != nil {
		slog.Warn("search filters: remote options unavailable, serving built-in table", "error", err)
		return cloneFacets(p.base)
	}

	facets := mergeFacets(p.base, resp.SearchFilters)
	if p.store != nil {
		if err := p.store.Set(ctx, facetsCacheKey, facets, p.ttl); err != nil {
			slog.Warn("search filters: cache write failed", "error", err)
		}
	}
	return facets
}

func mergeFacets(base, override domain.Facets) domain.Facets {
	out := cloneFacets(base)
	if len(override.Continents) > 0 {
		out.Continents = override.Continents
	}
	if len(override.Categories) > 0 {
		out.Categories = override.Categories
	}
	if len(override.PriceRanges) > 0 {
		out.PriceRanges = override.PriceRanges
	}
	if len(override.Durations) > 0 {
		out.Durations = override.Durations
	}
	if len(override.Seasons) > 0 {
		out.Seasons = override.Seasons
	}
	if len(override.Features) > 0 {
		out.Features = override.Features
	}
	return out
}

func cloneFacets(f domain.Facets) domain.Facets {
	return domain.Facets{
		Continents:  append([]string(nil), f.Continents...),
		Categories:  append([]string(nil), f.Categories...),
		PriceRanges: append([]domain.PriceBucket(nil), f.PriceRanges...),
		Durations:   append([]domain.DurationBucket(nil), f.Durations...),
		Seasons:     append([]string(nil), f.Seasons...),
		Features:    append([]string(nil), f.Features...),
	}
}
