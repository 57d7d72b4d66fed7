package booking

import "traveladdicts/internal/domain"

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
	Reload bool                 `json:"reload"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus domain.PaymentStatus `json:"paymentStatus" binding:"required"`
	Reload        bool                 `json:"reload"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
	Reload bool   `json:"reload"`
}

type ConfirmRequest struct {
	Reload bool `json:"reload"`
}

// Payment is a manual payment recorded by an admin. Amount is in cents.
type Payment struct {
	Amount    int64  `json:"amount" binding:"required" validate:"gt=0"`
	Method    string `json:"method" binding:"required" validate:"oneof=card bank_transfer cash mobile_money paypal"`
	Reference string `json:"reference" validate:"max=120"`
}

type RecordPaymentRequest struct {
	Payment
	Reload bool `json:"reload"`
}

type ListResult struct {
	Items []domain.Booking `json:"items"`
	Total int              `json:"total"`
}

// Event types published to admin dashboards.
const (
	EventStatusUpdated  = "booking.status_updated"
	EventPaymentUpdated = "booking.payment_updated"
)
