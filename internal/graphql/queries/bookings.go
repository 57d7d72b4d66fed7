package queries

const GetBookings = `
query GetBookings($limit: Int, $offset: Int) {
	bookings(limit: $limit, offset: $offset) {` + bookingFields + `}
}`

const GetBooking = `
query GetBooking($id: ID!) {
	booking(id: $id) {` + bookingFields + `}
}`

const UpdateBookingStatus = `
mutation UpdateBookingStatus($id: ID!, $status: BookingStatus!) {
	updateBookingStatus(id: $id, status: $status) {
		id
		status
		updatedAt
	}
}`

const UpdatePaymentStatus = `
mutation UpdatePaymentStatus($id: ID!, $paymentStatus: PaymentStatus!) {
	updatePaymentStatus(id: $id, paymentStatus: $paymentStatus) {
		id
		paymentStatus
		updatedAt
	}
}`

const CancelBooking = `
mutation CancelBooking($id: ID!, $reason: String!) {
	cancelBooking(id: $id, reason: $reason) {
		id
		status
		cancellationReason
		updatedAt
	}
}`

const RecordPayment = `
mutation RecordPayment($bookingId: ID!, $amount: Int!, $method: String!, $reference: String) {
	recordPayment(bookingId: $bookingId, amount: $amount, method: $method, reference: $reference) {
		id
		paymentStatus
		paidAmount
		updatedAt
	}
}`
