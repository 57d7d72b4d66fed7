package domain

type MonthlyRevenue struct {
	Month    string `json:"month"`
	Revenue  int64  `json:"revenue"`
	Bookings int    `json:"bookings"`
}

type TopTour struct {
	TourID   string `json:"tourId"`
	Title    string `json:"title"`
	Bookings int    `json:"bookings"`
	Revenue  int64  `json:"revenue"`
}

// DashboardStats is the admin overview. Revenue counts money actually received.
type DashboardStats struct {
	TotalBookings     int                   `json:"totalBookings"`
	ByStatus          map[BookingStatus]int `json:"byStatus"`
	ByPaymentStatus   map[PaymentStatus]int `json:"byPaymentStatus"`
	Revenue           int64                 `json:"revenue"`
	OutstandingAmount int64                 `json:"outstandingAmount"`
	Travelers         int                   `json:"travelers"`
	TotalTours        int                   `json:"totalTours"`
	TotalDestinations int                   `json:"totalDestinations"`
	MonthlyRevenue    []MonthlyRevenue      `json:"monthlyRevenue"`
	TopTours          []TopTour             `json:"topTours"`
	RecentBookings    []Booking             `json:"recentBookings"`
}
