package booking

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"traveladdicts/internal/domain"
	"traveladdicts/internal/graphql"
	"traveladdicts/internal/graphql/queries"
	"traveladdicts/internal/pkg/validator"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	fetchLimit      = 1000
)

// Publisher receives booking changes for live dashboards.
type Publisher interface {
	Publish(eventType string, payload any)
}

// ReloadFunc is called after a change when the caller asked for a reload.
type ReloadFunc func(ctx context.Context, b domain.Booking)

// Service runs the admin booking actions. It keeps a board: the bookings from the last
// List, patched in place after each successful mutation so the table reflects the change
// without another round trip. Nothing is rolled back if a mutation fails.
type Service struct {
	gql    graphql.Runner
	events Publisher

	mu    sync.RWMutex
	board map[string]domain.Booking

	hookMu    sync.RWMutex
	onStatus  []ReloadFunc
	onPayment []ReloadFunc
	issuer    IssuerFunc
}

func NewService(gql graphql.Runner, events Publisher) *Service {
	return &Service{
		gql:    gql,
		events: events,
		board:  make(map[string]domain.Booking),
	}
}

func (s *Service) OnStatusUpdate(fn ReloadFunc) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.onStatus = append(s.onStatus, fn)
}

func (s *Service) OnPaymentUpdate(fn ReloadFunc) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.onPayment = append(s.onPayment, fn)
}

// List fetches the bookings, replaces the board and returns the filtered page.
func (s *Service) List(ctx context.Context, f domain.BookingFilters) (ListResult, error) {
	if f.Status != "" && !f.Status.Valid() {
		return ListResult{}, ErrInvalidStatus
	}
	if f.PaymentStatus != "" && !f.PaymentStatus.Valid() {
		return ListResult{}, ErrInvalidPaymentStatus
	}
	from, to, err := parseRange(f.From, f.To)
	if err != nil {
		return ListResult{}, err
	}

	all, err := s.Refresh(ctx)
	if err != nil {
		return ListResult{}, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	matched := make([]domain.Booking, 0, len(all))
	for _, b := range all {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && b.PaymentStatus != f.PaymentStatus {
			continue
		}
		if q != "" && !matchesText(b, q) {
			continue
		}
		if !inRange(b.StartDate, from, to) {
			continue
		}
		matched = append(matched, b)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	res := ListResult{Total: len(matched), Items: []domain.Booking{}}
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		res.Items = matched[offset:end]
	}
	return res, nil
}

// Refresh reloads the whole board from the API.
func (s *Service) Refresh(ctx context.Context) ([]domain.Booking, error) {
	var resp struct {
		Bookings []domain.Booking `json:"bookings"`
	}
	vars := map[string]any{"limit": fetchLimit, "offset": 0}
	if err := s.gql.Request(ctx, queries.GetBookings, vars, nil, &resp); err != nil {
		return nil, err
	}

	board := make(map[string]domain.Booking, len(resp.Bookings))
	for _, b := range resp.Bookings {
		board[b.ID] = b
	}
	s.mu.Lock()
	s.board = board
	s.mu.Unlock()

	return resp.Bookings, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, ErrInvalidID
	}

	var resp struct {
		Booking *domain.Booking `json:"booking"`
	}
	if err := s.gql.Request(ctx, queries.GetBooking, map[string]any{"id": id}, nil, &resp); err != nil {
		return domain.Booking{}, err
	}
	if resp.Booking == nil {
		return domain.Booking{}, ErrNotFound
	}

	s.mu.Lock()
	s.board[id] = *resp.Booking
	s.mu.Unlock()
	return *resp.Booking, nil
}

// Board returns the locally held copy of a booking, if any.
func (s *Service) Board(id string) (domain.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.board[id]
	return b, ok
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, reload bool) (domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, ErrInvalidID
	}
	if !status.Valid() {
		return domain.Booking{}, ErrInvalidStatus
	}

	var resp struct {
		UpdateBookingStatus *struct {
			ID        string               `json:"id"`
			Status    domain.BookingStatus `json:"status"`
			UpdatedAt time.Time            `json:"updatedAt"`
		} `json:"updateBookingStatus"`
	}
	vars := map[string]any{"id": id, "status": string(status)}
	if err := s.gql.Request(ctx, queries.UpdateBookingStatus, vars, nil, &resp); err != nil {
		return domain.Booking{}, err
	}
	if resp.UpdateBookingStatus == nil {
		return domain.Booking{}, ErrNotFound
	}

	r := resp.UpdateBookingStatus
	b := s.patch(id, func(b *domain.Booking) {
		b.Status = r.Status
		b.UpdatedAt = r.UpdatedAt
	})
	s.statusChanged(ctx, b, reload)
	return b, nil
}

func (s *Service) Confirm(ctx context.Context, id string, reload bool) (domain.Booking, error) {
	return s.UpdateStatus(ctx, id, domain.BookingConfirmed, reload)
}

func (s *Service) Cancel(ctx context.Context, id, reason string, reload bool) (domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, ErrInvalidID
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Booking{}, ErrReasonRequired
	}

	var resp struct {
		CancelBooking *struct {
			ID                 string               `json:"id"`
			Status             domain.BookingStatus `json:"status"`
			CancellationReason string               `json:"cancellationReason"`
			UpdatedAt          time.Time            `json:"updatedAt"`
		} `json:"cancelBooking"`
	}
	vars := map[string]any{"id": id, "reason": reason}
	if err := s.gql.Request(ctx, queries.CancelBooking, vars, nil, &resp); err != nil {
		return domain.Booking{}, err
	}
	if resp.CancelBooking == nil {
		return domain.Booking{}, ErrNotFound
	}

	r := resp.CancelBooking
	b := s.patch(id, func(b *domain.Booking) {
		b.Status = r.Status
		if b.Status == "" {
			b.Status = domain.BookingCancelled
		}
		b.CancellationReason = reason
		b.UpdatedAt = r.UpdatedAt
	})
	s.statusChanged(ctx, b, reload)
	return b, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, reload bool) (domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, ErrInvalidID
	}
	if !status.Valid() {
		return domain.Booking{}, ErrInvalidPaymentStatus
	}

	var resp struct {
		UpdatePaymentStatus *struct {
			ID            string               `json:"id"`
			PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
			UpdatedAt     time.Time            `json:"updatedAt"`
		} `json:"updatePaymentStatus"`
	}
	vars := map[string]any{"id": id, "paymentStatus": string(status)}
	if err := s.gql.Request(ctx, queries.UpdatePaymentStatus, vars, nil, &resp); err != nil {
		return domain.Booking{}, err
	}
	if resp.UpdatePaymentStatus == nil {
		return domain.Booking{}, ErrNotFound
	}

	r := resp.UpdatePaymentStatus
	b := s.patch(id, func(b *domain.Booking) {
		b.PaymentStatus = r.PaymentStatus
		b.UpdatedAt = r.UpdatedAt
	})
	s.paymentChanged(ctx, b, reload)
	return b, nil
}

func (s *Service) RecordPayment(ctx context.Context, id string, p Payment, reload bool) (domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, ErrInvalidID
	}
	if errs := validator.Validate(p); len(errs) > 0 {
		return domain.Booking{}, ErrInvalidPayment
	}

	var resp struct {
		RecordPayment *struct {
			ID            string               `json:"id"`
			PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
			PaidAmount    int64                `json:"paidAmount"`
			UpdatedAt     time.Time            `json:"updatedAt"`
		} `json:"recordPayment"`
	}
	vars := map[string]any{
		"bookingId": id,
		"amount":    p.Amount,
		"method":    p.Method,
	}
	if p.Reference != "" {
		vars["reference"] = p.Reference
	}
	if err := s.gql.Request(ctx, queries.RecordPayment, vars, nil, &resp); err != nil {
		return domain.Booking{}, err
	}
	if resp.RecordPayment == nil {
		return domain.Booking{}, ErrNotFound
	}

	r := resp.RecordPayment
	b := s.patch(id, func(b *domain.Booking) {
		b.PaymentStatus = r.PaymentStatus
		b.PaidAmount = r.PaidAmount
		b.UpdatedAt = r.UpdatedAt
	})
	s.paymentChanged(ctx, b, reload)
	return b, nil
}

// patch applies fn to the board copy of id and returns the result. A booking that is
// not on the board is returned with only the fields the mutation reported.
func (s *Service) patch(id string, fn func(*domain.Booking)) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.board[id]
	if !ok {
		b = domain.Booking{ID: id}
	}
	fn(&b)
	if ok {
		s.board[id] = b
	}
	return b
}

func (s *Service) statusChanged(ctx context.Context, b domain.Booking, reload bool) {
	s.publish(EventStatusUpdated, b)
	if !reload {
		return
	}
	s.hookMu.RLock()
	hooks := append([]ReloadFunc(nil), s.onStatus...)
	s.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(ctx, b)
	}
}

func (s *Service) paymentChanged(ctx context.Context, b domain.Booking, reload bool) {
	s.publish(EventPaymentUpdated, b)
	if !reload {
		return
	}
	s.hookMu.RLock()
	hooks := append([]ReloadFunc(nil), s.onPayment...)
	s.hookMu.RUnlock()
	for _, fn := range hooks {
		fn(ctx, b)
	}
}

func (s *Service) publish(eventType string, b domain.Booking) {
	if s.events == nil {
		return
	}
	s.events.Publish(eventType, b)
	slog.Debug("booking event published", "type", eventType, "booking_id", b.ID)
}

func matchesText(b domain.Booking, q string) bool {
	for _, field := range []string{b.BookingReference, b.Customer.Name, b.Customer.Email, b.Tour.Title} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

const dateLayout = "2006-01-02"

func parseRange(from, to string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
	}
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

// inRange compares the travel date only; the API may send a full timestamp.
func inRange(startDate string, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if len(startDate) < len(dateLayout) {
		return false
	}
	d, err := time.Parse(dateLayout, startDate[:len(dateLayout)])
	if err != nil {
		return false
	}
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}
