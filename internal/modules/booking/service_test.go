package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
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

func respondWith(payload string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(payload), args.Get(4)); err != nil {
			panic(err)
		}
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

const boardPayload = `{"bookings":[
	{"id":"b1","bookingReference":"TA-1001","status":"PENDING","paymentStatus":"PENDING","totalPrice":245000,"paidAmount":0,
	 "startDate":"2026-07-04","adults":2,"children":0,"createdAt":"2026-05-01T10:00:00Z",
	 "customer":{"name":"Amina Okello","email":"amina@example.com"},"tour":{"id":"t1","title":"Serengeti Migration Safari","slug":"serengeti"}},
	{"id":"b2","bookingReference":"TA-1002","status":"CONFIRMED","paymentStatus":"PAID","totalPrice":129900,"paidAmount":129900,
	 "startDate":"2026-08-15T00:00:00Z","adults":1,"children":1,"createdAt":"2026-05-03T10:00:00Z",
	 "customer":{"name":"Lars Nilsen","email":"lars@example.com"},"tour":{"id":"t2","title":"Zanzibar Beach Escape","slug":"zanzibar"}},
	{"id":"b3","bookingReference":"TA-1003","status":"CANCELLED","paymentStatus":"REFUNDED","totalPrice":310000,"paidAmount":0,
	 "startDate":"2026-09-20","adults":2,"children":2,"createdAt":"2026-05-02T10:00:00Z",
	 "customer":{"name":"Mei Tanaka","email":"mei@example.com"},"tour":{"id":"t3","title":"Bwindi Gorilla Trek","slug":"bwindi"}}
]}`

func newLoadedService(t *testing.T) (*Service, *MockRunner, *recordingPublisher) {
	t.Helper()
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.GetBookings, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(boardPayload))

	pub := &recordingPublisher{}
	svc := NewService(runner, pub)
	_, err := svc.List(context.Background(), domain.BookingFilters{})
	require.NoError(t, err)
	return svc, runner, pub
}

func TestList_NewestFirst(t *testing.T) {
	svc, _, _ := newLoadedService(t)

	res, err := svc.List(context.Background(), domain.BookingFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 3)
	assert.Equal(t, []string{"b2", "b3", "b1"}, []string{res.Items[0].ID, res.Items[1].ID, res.Items[2].ID})
}

func TestList_Filters(t *testing.T) {
	svc, _, _ := newLoadedService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		filters domain.BookingFilters
		want    []string
	}{
		{"status", domain.BookingFilters{Status: domain.BookingConfirmed}, []string{"b2"}},
		{"payment", domain.BookingFilters{PaymentStatus: domain.PaymentRefunded}, []string{"b3"}},
		{"reference", domain.BookingFilters{Query: "ta-1001"}, []string{"b1"}},
		{"customer", domain.BookingFilters{Query: "tanaka"}, []string{"b3"}},
		{"tour", domain.BookingFilters{Query: "zanzibar"}, []string{"b2"}},
		{"date range", domain.BookingFilters{From: "2026-08-01", To: "2026-09-30"}, []string{"b2", "b3"}},
		{"from only", domain.BookingFilters{From: "2026-09-01"}, []string{"b3"}},
		{"page", domain.BookingFilters{Limit: 1, Offset: 1}, []string{"b3"}},
		{"past end", domain.BookingFilters{Offset: 10}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.List(ctx, tc.filters)
			require.NoError(t, err)
			ids := make([]string, 0, len(res.Items))
			for _, b := range res.Items {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestList_InvalidFilters(t *testing.T) {
	svc := NewService(new(MockRunner), nil)
	ctx := context.Background()

	_, err := svc.List(ctx, domain.BookingFilters{Status: "LOST"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.List(ctx, domain.BookingFilters{PaymentStatus: "MAYBE"})
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	_, err = svc.List(ctx, domain.BookingFilters{From: "2026-09-01", To: "2026-08-01"})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestConfirm_PatchesBoardWithoutRefetch(t *testing.T) {
	svc, runner, pub := newLoadedService(t)
	runner.On("Request", mock.Anything, queries.UpdateBookingStatus, map[string]any{"id": "b1", "status": "CONFIRMED"}, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"updateBookingStatus":{"id":"b1","status":"CONFIRMED","updatedAt":"2026-05-10T09:00:00Z"}}`))

	b, err := svc.Confirm(context.Background(), "b1", false)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, "Amina Okello", b.Customer.Name, "untouched fields come from the board")

	onBoard, ok := svc.Board("b1")
	require.True(t, ok)
	assert.Equal(t, domain.BookingConfirmed, onBoard.Status)

	runner.AssertNumberOfCalls(t, "Request", 2)
	assert.Equal(t, []string{EventStatusUpdated}, pub.events)
}

func TestUpdateStatus_ReloadCallbacks(t *testing.T) {
	svc, runner, _ := newLoadedService(t)
	runner.On("Request", mock.Anything, queries.UpdateBookingStatus, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"updateBookingStatus":{"id":"b1","status":"COMPLETED","updatedAt":"2026-05-10T09:00:00Z"}}`))

	var reloaded []string
	svc.OnStatusUpdate(func(_ context.Context, b domain.Booking) { reloaded = append(reloaded, b.ID) })
	svc.OnPaymentUpdate(func(context.Context, domain.Booking) { t.Fatal("payment hook must not run for a status change") })

	_, err := svc.UpdateStatus(context.Background(), "b1", domain.BookingCompleted, false)
	require.NoError(t, err)
	assert.Empty(t, reloaded)

	_, err = svc.UpdateStatus(context.Background(), "b1", domain.BookingCompleted, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1"}, reloaded)
}

func TestUpdateStatus_AnyToAny(t *testing.T) {
	svc, runner, _ := newLoadedService(t)
	runner.On("Request", mock.Anything, queries.UpdateBookingStatus, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"updateBookingStatus":{"id":"b3","status":"PENDING","updatedAt":"2026-05-10T09:00:00Z"}}`))

	b, err := svc.UpdateStatus(context.Background(), "b3", domain.BookingPending, false)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
}

func TestUpdateStatus_Validation(t *testing.T) {
	runner := new(MockRunner)
	svc := NewService(runner, nil)

	_, err := svc.UpdateStatus(context.Background(), "b1", "SHIPPED", false)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), " ", domain.BookingConfirmed, false)
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.UpdatePaymentStatus(context.Background(), "b1", "BOUNCED", false)
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)

	runner.AssertNumberOfCalls(t, "Request", 0)
}

func TestUpdateStatus_FailureLeavesBoard(t *testing.T) {
	svc, runner, pub := newLoadedService(t)
	runner.On("Request", mock.Anything, queries.UpdateBookingStatus, mock.Anything, mock.Anything, mock.Anything).
		Return(&graphql.Error{Kind: graphql.KindUnauthorized, Message: "token expired"})

	_, err := svc.Confirm(context.Background(), "b1", true)
	assert.True(t, graphql.IsUnauthorized(err))

	b, _ := svc.Board("b1")
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Empty(t, pub.events)
}

func TestCancel(t *testing.T) {
	svc, runner, _ := newLoadedService(t)
	runner.On("Request", mock.Anything, queries.CancelBooking, map[string]any{"id": "b2", "reason": "Guest request"}, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"cancelBooking":{"id":"b2","status":"CANCELLED","cancellationReason":"Guest request","updatedAt":"2026-05-10T09:00:00Z"}}`))

	_, err := svc.Cancel(context.Background(), "b2", "  ", false)
	assert.ErrorIs(t, err, ErrReasonRequired)

	b, err := svc.Cancel(context.Background(), "b2", " Guest request ", false)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, "Guest request", b.CancellationReason)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus, "payment is independent of status")
}

func TestRecordPayment(t *testing.T) {
	svc, runner, pub := newLoadedService(t)
	runner.On("Request", mock.Anything, queries.RecordPayment, map[string]any{
		"bookingId": "b1", "amount": int64(100000), "method": "card",
	}, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"recordPayment":{"id":"b1","paymentStatus":"PARTIALLY_PAID","paidAmount":100000,"updatedAt":"2026-05-10T09:00:00Z"}}`))

	var reloaded int
	svc.OnPaymentUpdate(func(context.Context, domain.Booking) { reloaded++ })

	b, err := svc.RecordPayment(context.Background(), "b1", Payment{Amount: 100000, Method: "card"}, true)
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPartiallyPaid, b.PaymentStatus)
	assert.Equal(t, int64(100000), b.PaidAmount)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 1, reloaded)
	assert.Equal(t, []string{EventPaymentUpdated}, pub.events)
}

func TestRecordPayment_Invalid(t *testing.T) {
	svc := NewService(new(MockRunner), nil)

	_, err := svc.RecordPayment(context.Background(), "b1", Payment{Amount: 0, Method: "card"}, false)
	assert.ErrorIs(t, err, ErrInvalidPayment)

	_, err = svc.RecordPayment(context.Background(), "b1", Payment{Amount: 500, Method: "barter"}, false)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestUpdatePaymentStatus_NotOnBoard(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.UpdatePaymentStatus, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"updatePaymentStatus":{"id":"b9","paymentStatus":"FAILED","updatedAt":"2026-05-10T09:00:00Z"}}`))
	svc := NewService(runner, nil)

	b, err := svc.UpdatePaymentStatus(context.Background(), "b9", domain.PaymentFailed, false)
	require.NoError(t, err)
	assert.Equal(t, "b9", b.ID)
	assert.Equal(t, domain.PaymentFailed, b.PaymentStatus)

	_, ok := svc.Board("b9")
	assert.False(t, ok)
}

func TestGet_NotFound(t *testing.T) {
	runner := new(MockRunner)
	runner.On("Request", mock.Anything, queries.GetBooking, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Run(respondWith(`{"booking":null}`))

	_, err := NewService(runner, nil).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
