package analytics

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"traveladdicts/internal/cache"
	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
)

const (
	cacheKey      = "analytics:overview"
	bookingWindow = 1000
	monthsShown   = 6
	topToursShown = 5
	recentShown   = 5
)

type Service struct {
	gql   graphql.Runner
	cache cache.Store
	ttl   time.Duration
	now   func() time.Time
}

func NewService(gql graphql.Runner, store cache.Store, ttl time.Duration) *Service {
	return &Service{gql: gql, cache: store, ttl: ttl, now: time.Now}
}

// Overview builds the dashboard from bookings, tours and destinations fetched in parallel.
func (s *Service) Overview(ctx context.Context) (domain.DashboardStats, error) {
	if s.cache != nil {
		var hit domain.DashboardStats
		ok, err := s.cache.Get(ctx, cacheKey, &hit)
		if err != nil {
			slog.Warn("analytics cache read failed", "error", err)
		}
		if ok && err == nil {
			return hit, nil
		}
	}

	var (
		bookings     []domain.Booking
		tours        int
		destinations int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var resp struct {
			Bookings []domain.Booking `json:"bookings"`
		}
		vars := map[string]any{"limit": bookingWindow, "offset": 0}
		if err := s.gql.Request(gctx, queries.GetBookings, vars, nil, &resp); err != nil {
			return err
		}
		bookings = resp.Bookings
		return nil
	})
	g.Go(func() error {
		var resp struct {
			ToursCount int `json:"toursCount"`
		}
		if err := s.gql.Request(gctx, queries.GetTours, map[string]any{"limit": 1, "offset": 0}, nil, &resp); err != nil {
			return err
		}
		tours = resp.ToursCount
		return nil
	})
	g.Go(func() error {
		var resp struct {
			DestinationsCount int `json:"destinationsCount"`
		}
		if err := s.gql.Request(gctx, queries.GetDestinations, map[string]any{"limit": 1, "offset": 0}, nil, &resp); err != nil {
			return err
		}
		destinations = resp.DestinationsCount
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}

	stats := Compute(bookings, s.now())
	stats.TotalTours = tours
	stats.TotalDestinations = destinations

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, s.ttl); err != nil {
			slog.Warn("analytics cache write failed", "error", err)
		}
	}
	return stats, nil
}

// Invalidate drops the cached overview so the next read recomputes it.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		slog.Warn("analytics cache invalidation failed", "error", err)
	}
}

// Received is what a booking has actually paid: the full price once PAID, the recorded
// amount while PARTIALLY_PAID, nothing otherwise.
func Received(b domain.Booking) int64 {
	switch b.PaymentStatus {
	case domain.PaymentPaid:
		if b.PaidAmount > b.TotalPrice {
			return b.PaidAmount
		}
		return b.TotalPrice
	case domain.PaymentPartiallyPaid:
		return b.PaidAmount
	}
	return 0
}

// Compute aggregates a booking snapshot. Monthly revenue covers the last six calendar
// months up to now, oldest first, with empty months present.
func Compute(bookings []domain.Booking, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalBookings:   len(bookings),
		ByStatus:        make(map[domain.BookingStatus]int),
		ByPaymentStatus: make(map[domain.PaymentStatus]int),
		MonthlyRevenue:  make([]domain.MonthlyRevenue, monthsShown),
		TopTours:        []domain.TopTour{},
		RecentBookings:  []domain.Booking{},
	}

	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(monthsShown - 1), 0)
	monthIdx := make(map[string]int, monthsShown)
	for i := range stats.MonthlyRevenue {
		m := first.AddDate(0, i, 0).Format("2006-01")
		stats.MonthlyRevenue[i].Month = m
		monthIdx[m] = i
	}

	tours := make(map[string]*domain.TopTour)
	for _, b := range bookings {
		stats.ByStatus[b.Status]++
		stats.ByPaymentStatus[b.PaymentStatus]++

		received := Received(b)
		stats.Revenue += received

		if i, ok := monthIdx[b.CreatedAt.UTC().Format("2006-01")]; ok {
			stats.MonthlyRevenue[i].Revenue += received
			stats.MonthlyRevenue[i].Bookings++
		}

		if b.Status == domain.BookingCancelled {
			continue
		}
		stats.Travelers += b.Travelers()
		if due := b.TotalPrice - received; due > 0 {
			stats.OutstandingAmount += due
		}

		if b.Tour.ID == "" {
			continue
		}
		t, ok := tours[b.Tour.ID]
		if !ok {
			t = &domain.TopTour{TourID: b.Tour.ID, Title: b.Tour.Title}
			tours[b.Tour.ID] = t
		}
		t.Bookings++
		t.Revenue += received
	}

	for _, t := range tours {
		stats.TopTours = append(stats.TopTours, *t)
	}
	sort.Slice(stats.TopTours, func(i, j int) bool {
		a, b := stats.TopTours[i], stats.TopTours[j]
		if a.Bookings != b.Bookings {
			return a.Bookings > b.Bookings
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.TourID < b.TourID
	})
	if len(stats.TopTours) > topToursShown {
		stats.TopTours = stats.TopTours[:topToursShown]
	}

	recent := append([]domain.Booking(nil), bookings...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > recentShown {
		recent = recent[:recentShown]
	}
	stats.RecentBookings = append(stats.RecentBookings, recent...)

	return stats
}
