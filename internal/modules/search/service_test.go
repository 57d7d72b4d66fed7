package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Request(ctx context.Context, query string, variables map[string]any, headers http.Header, out any) error {
	args := m.Called(ctx, query, variables, headers, out)
	return args.Error(0)
}

// respondWith decodes payload into the out argument, like the real client does with data.
func respondWith(payload string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(payload), args.Get(4)); err != nil {
			panic(err)
		}
	}
}

func atOffset(offset int) any {
	return mock.MatchedBy(func(v map[string]any) bool { return v["offset"] == offset })
}

func toursPayload(from, n, total int, hasMore bool) string {
	tours := make([]map[string]any, 0, n)
	for i := from; i < from+n; i++ {
		tours = append(tours, map[string]any{
			"id":    fmt.Sprintf("t%d", i),
			"title": fmt.Sprintf("Tour %d", i),
			"price": 100000 + i*25000,
		})
	}
	b, _ := json.Marshal(map[string]any{
		"searchTours": map[string]any{"tours": tours, "totalCount": total, "hasMore": hasMore},
	})
	return string(b)
}

func priceFilters() domain.SearchFilters {
	minPrice, maxPrice := int64(100000), int64(250000)
	return domain.SearchFilters{MinPrice: &minPrice, MaxPrice: &maxPrice}
}

func TestSearchTours_PassesFiltersVerbatim(t *testing.T) {
	runner := new(MockRunner)
	filters := priceFilters()

	runner.On("Request", mock.Anything, queries.SearchTours, mock.MatchedBy(func(v map[string]any) bool {
		f, ok := v["filters"].(domain.SearchFilters)
		return ok && *f.MinPrice == 100000 && *f.MaxPrice == 250000 &&
			v["limit"] == 2 && v["offset"] == 0 && v["sort"] == "price-low"
	}), mock.Anything, mock.Anything).
		Return(nil).
		Run(respondWith(toursPayload(0, 2, 5, true)))

	page, err := NewService(runner).SearchTours(context.Background(), filters, domain.SortPriceAsc, 2, 0)
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 5, page.TotalCount)
	assert.True(t, page.HasMore)
	runner.AssertExpectations(t)
}

func TestSearchTours_DefaultsAndClampsLimit(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.SearchTours, mock.MatchedBy(func(v map[string]any) bool {
		_, hasSort := v["sort"]
		return v["limit"] == DefaultLimit && !hasSort
	}), mock.Anything, mock.Anything).Return(nil).Run(respondWith(toursPayload(0, 0, 0, false))).Once()
	runner.On("Request", mock.Anything, queries.SearchTours, mock.MatchedBy(func(v map[string]any) bool {
		return v["limit"] == MaxLimit
	}), mock.Anything, mock.Anything).Return(nil).Run(respondWith(toursPayload(0, 0, 0, false))).Once()

	svc := NewService(runner)

	page, err := svc.SearchTours(context.Background(), domain.SearchFilters{}, "", 0, 0)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	_, err = svc.SearchTours(context.Background(), domain.SearchFilters{}, "", 500, 0)
	require.NoError(t, err)
	runner.AssertExpectations(t)
}

func TestSearchTours_RejectsNegativeOffset(t *testing.T) {
	runner := new(MockRunner)

	_, err := NewService(runner).SearchTours(context.Background(), domain.SearchFilters{}, "", 10, -1)
	assert.ErrorIs(t, err, ErrInvalidPagination)
	runner.AssertNumberOfCalls(t, "Request", 0)
}

func TestSearchTours_PropagatesTransportError(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.SearchTours, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindNetwork, Message: "connection refused"})

	_, err := NewService(runner).SearchTours(context.Background(), domain.SearchFilters{}, "", 10, 0)
	assert.Equal(t, graphql.KindNetwork, graphql.KindOf(err))
}

func TestSearchDestinations(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.SearchDestinations, mock.MatchedBy(func(v map[string]any) bool {
		f, ok := v["filters"].(domain.SearchFilters)
		return ok && f.Continent == "Africa"
	}), mock.Anything, mock.Anything).
		Return(nil).
		Run(respondWith(`{"searchDestinations":{"destinations":[{"id":"d1","name":"Serengeti"}],"totalCount":1,"hasMore":false}}`))

	page, err := NewService(runner).SearchDestinations(context.Background(), domain.SearchFilters{Continent: "Africa"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Serengeti", page.Items[0].Name)
	assert.False(t, page.HasMore)
}

// Two pages of a price-filtered search accumulate in a feed.
func TestSearchTours_PriceRangeScenario(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.SearchTours, atOffset(0), mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(toursPayload(0, 2, 5, true)))
	runner.On("Request", mock.Anything, queries.SearchTours, atOffset(2), mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(toursPayload(2, 2, 5, true)))

	svc := NewService(runner)
	filters := priceFilters()
	load := func(ctx context.Context, offset int) (Page[domain.SearchTour], error) {
		return svc.SearchTours(ctx, filters, "", 2, offset)
	}
	feed := NewFeed[domain.SearchTour](nil)

	snap, err := feed.Load(context.Background(), 0, load)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 5, snap.TotalCount)
	assert.True(t, snap.HasMore)

	snap, err = feed.Load(context.Background(), 2, load)
	require.NoError(t, err)
	assert.Len(t, snap.Items, 4)
	assert.Equal(t, "t3", snap.Items[3].ID)
}
