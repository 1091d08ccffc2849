package analytics

// Dashboard holds the headline counters of the admin dashboard.
type Dashboard struct {
	TotalOrders         int     `json:"totalOrders"`
	TotalRevenue        float64 `json:"totalRevenue"`
	PendingOrders       int     `json:"pendingOrders"`
	TotalProducts       int     `json:"totalProducts"`
	TotalUsers          int     `json:"totalUsers"`
	UnreadNotifications int     `json:"unreadNotifications"`
}

// SalesPoint is the revenue and order count of one period bucket.
type SalesPoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Sales is a series of buckets, oldest first.
type Sales struct {
	Period string       `json:"period"`
	Points []SalesPoint `json:"points"`
}

// SalesRequest holds the query parameters of the sales endpoint.
type SalesRequest struct {
	Period string `form:"period" binding:"omitempty,oneof=week month year"`
}
