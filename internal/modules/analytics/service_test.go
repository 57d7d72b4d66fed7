package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"traveladdicts/internal/cache"
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

func respondWith(payload string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(payload), args.Get(4)); err != nil {
			panic(err)
		}
	}
}

var now = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func booking(id, tourID string, status domain.BookingStatus, pay domain.PaymentStatus, total, paid int64, created time.Time) domain.Booking {
	return domain.Booking{
		ID:            id,
		Status:        status,
		PaymentStatus: pay,
		TotalPrice:    total,
		PaidAmount:    paid,
		Adults:        2,
		Tour:          domain.TourRef{ID: tourID, Title: "Tour " + tourID},
		CreatedAt:     created,
	}
}

func fixtures() []domain.Booking {
	return []domain.Booking{
		booking("b1", "t1", domain.BookingConfirmed, domain.PaymentPaid, 500000, 500000, now.AddDate(0, 0, -3)),
		booking("b2", "t1", domain.BookingPending, domain.PaymentPartiallyPaid, 300000, 100000, now.AddDate(0, -1, 0)),
		booking("b3", "t2", domain.BookingCancelled, domain.PaymentRefunded, 200000, 0, now.AddDate(0, -2, 0)),
		booking("b4", "t2", domain.BookingPending, domain.PaymentPending, 250000, 0, now.AddDate(0, -8, 0)),
		booking("b5", "t3", domain.BookingCompleted, domain.PaymentPaid, 120000, 0, now.AddDate(0, -5, -10)),
	}
}

func TestReceived(t *testing.T) {
	assert.Equal(t, int64(500000), Received(booking("", "", "", domain.PaymentPaid, 500000, 0, now)))
	assert.Equal(t, int64(100000), Received(booking("", "", "", domain.PaymentPartiallyPaid, 300000, 100000, now)))
	assert.Zero(t, Received(booking("", "", "", domain.PaymentRefunded, 300000, 300000, now)))
	assert.Zero(t, Received(booking("", "", "", domain.PaymentPending, 300000, 0, now)))
}

func TestCompute_Totals(t *testing.T) {
	stats := Compute(fixtures(), now)

	assert.Equal(t, 5, stats.TotalBookings)
	assert.Equal(t, 2, stats.ByStatus[domain.BookingPending])
	assert.Equal(t, 1, stats.ByStatus[domain.BookingCancelled])
	assert.Equal(t, 2, stats.ByPaymentStatus[domain.PaymentPaid])

	// paid 500000 + partial 100000 + paid 120000
	assert.Equal(t, int64(720000), stats.Revenue)
	// b2 owes 200000, b4 owes 250000; cancelled b3 owes nothing
	assert.Equal(t, int64(450000), stats.OutstandingAmount)
	assert.Equal(t, 8, stats.Travelers)
}

func TestCompute_MonthlyRevenue(t *testing.T) {
	stats := Compute(fixtures(), now)

	require.Len(t, stats.MonthlyRevenue, 6)
	assert.Equal(t, "2024-01", stats.MonthlyRevenue[0].Month)
	assert.Equal(t, "2024-06", stats.MonthlyRevenue[5].Month)

	byMonth := map[string]domain.MonthlyRevenue{}
	for _, m := range stats.MonthlyRevenue {
		byMonth[m.Month] = m
	}
	assert.Equal(t, int64(500000), byMonth["2024-06"].Revenue)
	assert.Equal(t, int64(100000), byMonth["2024-05"].Revenue)
	assert.Equal(t, 1, byMonth["2024-04"].Bookings)
	assert.Zero(t, byMonth["2024-04"].Revenue)
	assert.Equal(t, int64(120000), byMonth["2024-01"].Revenue)
	assert.Zero(t, byMonth["2024-03"].Bookings)
}

func TestCompute_TopToursAndRecent(t *testing.T) {
	stats := Compute(fixtures(), now)

	require.Len(t, stats.TopTours, 3)
	assert.Equal(t, "t1", stats.TopTours[0].TourID)
	assert.Equal(t, 2, stats.TopTours[0].Bookings)
	assert.Equal(t, int64(600000), stats.TopTours[0].Revenue)
	// t2 and t3 both have one live booking; t3 earned more
	assert.Equal(t, "t3", stats.TopTours[1].TourID)

	require.Len(t, stats.RecentBookings, 5)
	assert.Equal(t, "b1", stats.RecentBookings[0].ID)
	assert.Equal(t, "b4", stats.RecentBookings[4].ID)
}

func TestCompute_Empty(t *testing.T) {
	stats := Compute(nil, now)

	assert.Zero(t, stats.TotalBookings)
	assert.NotNil(t, stats.TopTours)
	assert.NotNil(t, stats.RecentBookings)
	assert.Len(t, stats.MonthlyRevenue, 6)
}

func stubUpstream(runner *MockRunner) {
	data, _ := json.Marshal(map[string]any{"bookings": fixtures()})
	runner.On("Request", mock.Anything, queries.GetBookings, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(string(data)))
	runner.On("Request", mock.Anything, queries.GetTours, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"tours":[],"toursCount":42}`))
	runner.On("Request", mock.Anything, queries.GetDestinations, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"destinations":[],"destinationsCount":17}`))
}

func TestService_Overview_CachedUntilInvalidated(t *testing.T) {
	runner := new(MockRunner)
	stubUpstream(runner)
	svc := NewService(runner, cache.NewMemory(time.Minute), time.Minute)
	svc.now = func() time.Time { return now }

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalTours)
	assert.Equal(t, 17, stats.TotalDestinations)
	assert.Equal(t, int64(720000), stats.Revenue)

	again, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats.Revenue, again.Revenue)
	assert.Equal(t, stats.ByStatus, again.ByStatus)
	runner.AssertNumberOfCalls(t, "Request", 3)

	svc.Invalidate(context.Background())
	_, err = svc.Overview(context.Background())
	require.NoError(t, err)
	runner.AssertNumberOfCalls(t, "Request", 6)
}

func TestService_Overview_AnyFailureFails(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.GetBookings, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindUnauthorized, Message: "jwt expired"})
	runner.On("Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()
	svc := NewService(runner, nil, 0)

	_, err := svc.Overview(context.Background())
	var gqlErr *graphql.Error
	require.ErrorAs(t, err, &gqlErr)
	assert.Equal(t, graphql.KindUnauthorized, gqlErr.Kind)
}

func TestHandler_Overview_Unauthorized(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindUnauthorized, Message: "jwt expired"})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewService(runner, nil, 0)).RegisterRoutes(r.Group("/api/v1/admin"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
