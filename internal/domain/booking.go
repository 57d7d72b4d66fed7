package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentRefunded      PaymentStatus = "REFUNDED"
	PaymentFailed        PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentPartiallyPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}

type Customer struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
}

type TourRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Booking amounts are integer USD cents.
type Booking struct {
	ID                 string        `json:"id"`
	BookingReference   string        `json:"bookingReference"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentStatus `json:"paymentStatus"`
	TotalPrice         int64         `json:"totalPrice"`
	PaidAmount         int64         `json:"paidAmount"`
	Currency           string        `json:"currency,omitempty"`
	StartDate          string        `json:"startDate"`
	EndDate            string        `json:"endDate,omitempty"`
	Adults             int           `json:"adults"`
	Children           int           `json:"children"`
	Customer           Customer      `json:"customer"`
	Tour               TourRef       `json:"tour"`
	SpecialRequests    string        `json:"specialRequests,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (b Booking) Travelers() int {
	return b.Adults + b.Children
}

// BookingFilters drive the admin bookings table. All fields are optional.
type BookingFilters struct {
	Query         string        `form:"q"`
	Status        BookingStatus `form:"status"`
	PaymentStatus PaymentStatus `form:"paymentStatus"`
	From          string        `form:"from"`
	To            string        `form:"to"`
	Limit         int           `form:"limit"`
	Offset        int           `form:"offset"`
}
