package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"traveladdicts/internal/cache"
	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
	"traveladdicts/internal/pkg/validator"
)

const (
	keyPrefix       = "catalog:"
	defaultPageSize = 12
	maxPageSize     = 100
)

// Service reads the tour and destination catalogue. Public reads go through the
// response cache; every admin write drops the whole catalogue from it.
type Service struct {
	gql   graphql.Runner
	cache cache.Store
	ttl   time.Duration
}

func NewService(gql graphql.Runner, store cache.Store, ttl time.Duration) *Service {
	return &Service{gql: gql, cache: store, ttl: ttl}
}

func (s *Service) ListTours(ctx context.Context, limit, offset int) (TourList, error) {
	limit, offset = page(limit, offset)
	key := fmt.Sprintf("%stours:%d:%d", keyPrefix, limit, offset)

	return cached(ctx, s, key, func() (TourList, error) {
		var resp struct {
			Tours      []domain.SearchTour `json:"tours"`
			ToursCount int                 `json:"toursCount"`
		}
		vars := map[string]any{"limit": limit, "offset": offset}
		if err := s.gql.Request(ctx, queries.GetTours, vars, nil, &resp); err != nil {
			return TourList{}, err
		}
		if resp.Tours == nil {
			resp.Tours = []domain.SearchTour{}
		}
		return TourList{Items: resp.Tours, Total: resp.ToursCount}, nil
	})
}

func (s *Service) FeaturedTours(ctx context.Context, limit int) ([]domain.SearchTour, error) {
	if limit <= 0 {
		limit = 6
	}
	key := fmt.Sprintf("%sfeatured:%d", keyPrefix, limit)

	return cached(ctx, s, key, func() ([]domain.SearchTour, error) {
		var resp struct {
			FeaturedTours []domain.SearchTour `json:"featuredTours"`
		}
		if err := s.gql.Request(ctx, queries.FeaturedTours, map[string]any{"limit": limit}, nil, &resp); err != nil {
			return nil, err
		}
		if resp.FeaturedTours == nil {
			return []domain.SearchTour{}, nil
		}
		return resp.FeaturedTours, nil
	})
}

func (s *Service) GetTour(ctx context.Context, slug string) (domain.Tour, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Tour{}, ErrInvalidID
	}

	return cached(ctx, s, keyPrefix+"tour:"+slug, func() (domain.Tour, error) {
		var resp struct {
			Tour *domain.Tour `json:"tour"`
		}
		if err := s.gql.Request(ctx, queries.GetTour, map[string]any{"slug": slug}, nil, &resp); err != nil {
			return domain.Tour{}, err
		}
		if resp.Tour == nil {
			return domain.Tour{}, ErrNotFound
		}
		return *resp.Tour, nil
	})
}

func (s *Service) ListDestinations(ctx context.Context, limit, offset int) (DestinationList, error) {
	limit, offset = page(limit, offset)
	key := fmt.Sprintf("%sdestinations:%d:%d", keyPrefix, limit, offset)

	return cached(ctx, s, key, func() (DestinationList, error) {
		var resp struct {
			Destinations      []domain.SearchDestination `json:"destinations"`
			DestinationsCount int                        `json:"destinationsCount"`
		}
		vars := map[string]any{"limit": limit, "offset": offset}
		if err := s.gql.Request(ctx, queries.GetDestinations, vars, nil, &resp); err != nil {
			return DestinationList{}, err
		}
		if resp.Destinations == nil {
			resp.Destinations = []domain.SearchDestination{}
		}
		return DestinationList{Items: resp.Destinations, Total: resp.DestinationsCount}, nil
	})
}

func (s *Service) GetDestination(ctx context.Context, slug string) (domain.Destination, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return domain.Destination{}, ErrInvalidID
	}

	return cached(ctx, s, keyPrefix+"destination:"+slug, func() (domain.Destination, error) {
		var resp struct {
			Destination *domain.Destination `json:"destination"`
		}
		if err := s.gql.Request(ctx, queries.GetDestination, map[string]any{"slug": slug}, nil, &resp); err != nil {
			return domain.Destination{}, err
		}
		if resp.Destination == nil {
			return domain.Destination{}, ErrNotFound
		}
		return *resp.Destination, nil
	})
}

func (s *Service) TourPricing(ctx context.Context, tourID string) ([]domain.PriceTier, error) {
	if strings.TrimSpace(tourID) == "" {
		return nil, ErrInvalidID
	}

	return cached(ctx, s, keyPrefix+"pricing:"+tourID, func() ([]domain.PriceTier, error) {
		var resp struct {
			TourPricing []domain.PriceTier `json:"tourPricing"`
		}
		if err := s.gql.Request(ctx, queries.GetTourPricing, map[string]any{"tourId": tourID}, nil, &resp); err != nil {
			return nil, err
		}
		if resp.TourPricing == nil {
			return []domain.PriceTier{}, nil
		}
		return resp.TourPricing, nil
	})
}

func (s *Service) TourItinerary(ctx context.Context, tourID string) ([]domain.ItineraryDay, error) {
	if strings.TrimSpace(tourID) == "" {
		return nil, ErrInvalidID
	}

	return cached(ctx, s, keyPrefix+"itinerary:"+tourID, func() ([]domain.ItineraryDay, error) {
		var resp struct {
			TourItinerary []domain.ItineraryDay `json:"tourItinerary"`
		}
		if err := s.gql.Request(ctx, queries.GetTourItinerary, map[string]any{"tourId": tourID}, nil, &resp); err != nil {
			return nil, err
		}
		days := resp.TourItinerary
		if days == nil {
			days = []domain.ItineraryDay{}
		}
		sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
		return days, nil
	})
}

// UpsertTour creates a tour when id is empty and updates it otherwise.
func (s *Service) UpsertTour(ctx context.Context, id string, in domain.TourInput) (domain.Tour, error) {
	if in.Slug == "" {
		in.Slug = Slugify(in.Title)
	}
	if fields := validator.Validate(in); len(fields) > 0 {
		return domain.Tour{}, &InputError{Fields: fields}
	}

	var (
		resp struct {
			CreateTour *domain.Tour `json:"createTour"`
			UpdateTour *domain.Tour `json:"updateTour"`
		}
		err error
	)
	if id == "" {
		err = s.gql.Request(ctx, queries.CreateTour, map[string]any{"input": in}, nil, &resp)
	} else {
		err = s.gql.Request(ctx, queries.UpdateTour, map[string]any{"id": id, "input": in}, nil, &resp)
	}
	if err != nil {
		return domain.Tour{}, err
	}

	s.invalidate(ctx)
	switch {
	case resp.CreateTour != nil:
		return *resp.CreateTour, nil
	case resp.UpdateTour != nil:
		return *resp.UpdateTour, nil
	}
	return domain.Tour{}, ErrNotFound
}

func (s *Service) DeleteTour(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	var resp struct {
		DeleteTour bool `json:"deleteTour"`
	}
	if err := s.gql.Request(ctx, queries.DeleteTour, map[string]any{"id": id}, nil, &resp); err != nil {
		return err
	}
	if !resp.DeleteTour {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpsertDestination(ctx context.Context, id string, in domain.DestinationInput) (domain.Destination, error) {
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	if fields := validator.Validate(in); len(fields) > 0 {
		return domain.Destination{}, &InputError{Fields: fields}
	}

	var (
		resp struct {
			CreateDestination *domain.Destination `json:"createDestination"`
			UpdateDestination *domain.Destination `json:"updateDestination"`
		}
		err error
	)
	if id == "" {
		err = s.gql.Request(ctx, queries.CreateDestination, map[string]any{"input": in}, nil, &resp)
	} else {
		err = s.gql.Request(ctx, queries.UpdateDestination, map[string]any{"id": id, "input": in}, nil, &resp)
	}
	if err != nil {
		return domain.Destination{}, err
	}

	s.invalidate(ctx)
	switch {
	case resp.CreateDestination != nil:
		return *resp.CreateDestination, nil
	case resp.UpdateDestination != nil:
		return *resp.UpdateDestination, nil
	}
	return domain.Destination{}, ErrNotFound
}

func (s *Service) DeleteDestination(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	var resp struct {
		DeleteDestination bool `json:"deleteDestination"`
	}
	if err := s.gql.Request(ctx, queries.DeleteDestination, map[string]any{"id": id}, nil, &resp); err != nil {
		return err
	}
	if !resp.DeleteDestination {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) UpdatePricing(ctx context.Context, tourID string, tiers []domain.PriceTier) ([]domain.PriceTier, error) {
	if strings.TrimSpace(tourID) == "" {
		return nil, ErrInvalidID
	}
	for i, tier := range tiers {
		if fields := validator.Validate(tier); len(fields) > 0 {
			return nil, &InputError{Fields: prefixed(fmt.Sprintf("tiers[%d].", i), fields)}
		}
	}

	var resp struct {
		UpdateTourPricing []domain.PriceTier `json:"updateTourPricing"`
	}
	vars := map[string]any{"tourId": tourID, "tiers": tiers}
	if err := s.gql.Request(ctx, queries.UpdateTourPricing, vars, nil, &resp); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return resp.UpdateTourPricing, nil
}

// UpdateItinerary replaces a tour's days. Days without a number are numbered by
// position; two days with the same number are rejected.
func (s *Service) UpdateItinerary(ctx context.Context, tourID string, days []domain.ItineraryDay) ([]domain.ItineraryDay, error) {
	if strings.TrimSpace(tourID) == "" {
		return nil, ErrInvalidID
	}

	seen := make(map[int]bool, len(days))
	for i := range days {
		if days[i].Day <= 0 {
			days[i].Day = i + 1
		}
		if seen[days[i].Day] {
			return nil, &InputError{Fields: map[string]string{fmt.Sprintf("days[%d].Day", i): "unique"}}
		}
		seen[days[i].Day] = true
		if fields := validator.Validate(days[i]); len(fields) > 0 {
			return nil, &InputError{Fields: prefixed(fmt.Sprintf("days[%d].", i), fields)}
		}
	}

	var resp struct {
		UpdateTourItinerary []domain.ItineraryDay `json:"updateTourItinerary"`
	}
	vars := map[string]any{"tourId": tourID, "days": days}
	if err := s.gql.Request(ctx, queries.UpdateTourItinerary, vars, nil, &resp); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return resp.UpdateTourItinerary, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, keyPrefix); err != nil {
		slog.Warn("catalog cache invalidation failed", "error", err)
	}
}

// cached serves key from the response cache, filling it from fetch on a miss. Cache
// failures only cost a round trip.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	if s.cache != nil {
		var hit T
		ok, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			slog.Warn("catalog cache read failed", "key", key, "error", err)
		}
		if ok && err == nil {
			return hit, nil
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
			slog.Warn("catalog cache write failed", "key", key, "error", err)
		}
	}
	return v, nil
}

func page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func prefixed(prefix string, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[prefix+k] = v
	}
	return out
}
