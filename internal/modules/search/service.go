package search

import (
	"context"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
)

const (
	DefaultLimit = 12
	MaxLimit     = 50
)

// Page is one server page of a search; TotalCount and HasMore come from the API as-is.
type Page[T any] struct {
	Items      []T
	TotalCount int
	HasMore    bool
}

type Service struct {
	gql graphql.Runner
}

func NewService(gql graphql.Runner) *Service {
	return &Service{gql: gql}
}

func (s *Service) SearchTours(ctx context.Context, filters domain.SearchFilters, sort domain.SortOrder, limit, offset int) (Page[domain.SearchTour], error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return Page[domain.SearchTour]{}, err
	}

	vars := variables(filters, limit, offset)
	if sort != "" {
		vars["sort"] = string(sort)
	}

	var resp struct {
		SearchTours struct {
			Tours      []domain.SearchTour `json:"tours"`
			TotalCount int                 `json:"totalCount"`
			HasMore    bool                `json:"hasMore"`
		} `json:"searchTours"`
	}
	if err := s.gql.Request(ctx, queries.SearchTours, vars, nil, &resp); err != nil {
		return Page[domain.SearchTour]{}, err
	}

	items := resp.SearchTours.Tours
	if items == nil {
		items = []domain.SearchTour{}
	}
	return Page[domain.SearchTour]{
		Items:      items,
		TotalCount: resp.SearchTours.TotalCount,
		HasMore:    resp.SearchTours.HasMore,
	}, nil
}

func (s *Service) SearchDestinations(ctx context.Context, filters domain.SearchFilters, limit, offset int) (Page[domain.SearchDestination], error) {
	limit, offset, err := normalizePage(limit, offset)
	if err != nil {
		return Page[domain.SearchDestination]{}, err
	}

	var resp struct {
		SearchDestinations struct {
			Destinations []domain.SearchDestination `json:"destinations"`
			TotalCount   int                        `json:"totalCount"`
			HasMore      bool                       `json:"hasMore"`
		} `json:"searchDestinations"`
	}
	if err := s.gql.Request(ctx, queries.SearchDestinations, variables(filters, limit, offset), nil, &resp); err != nil {
		return Page[domain.SearchDestination]{}, err
	}

	items := resp.SearchDestinations.Destinations
	if items == nil {
		items = []domain.SearchDestination{}
	}
	return Page[domain.SearchDestination]{
		Items:      items,
		TotalCount: resp.SearchDestinations.TotalCount,
		HasMore:    resp.SearchDestinations.HasMore,
	}, nil
}

// Filters go to the API verbatim; unset fields are dropped by their omitempty tags.
func variables(filters domain.SearchFilters, limit, offset int) map[string]any {
	return map[string]any{
		"filters": filters,
		"limit":   limit,
		"offset":  offset,
	}
}

func normalizePage(limit, offset int) (int, int, error) {
	if offset < 0 {
		return 0, 0, ErrInvalidPagination
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit, offset, nil
}
