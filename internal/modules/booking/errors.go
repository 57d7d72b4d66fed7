package booking

import "errors"

var (
	ErrNotFound             = errors.New("not_found")
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrInvalidPaymentStatus = errors.New("invalid_payment_status")
	ErrReasonRequired       = errors.New("reason_required")
	ErrInvalidPayment       = errors.New("invalid_payment")
	ErrInvalidDateRange     = errors.New("invalid_date_range")
)
