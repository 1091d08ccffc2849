package user

// Stats summarizes the users collection. Order counts and spend come from
// the aggregates stored on each user.
type Stats struct {
	Total        int     `json:"total"`
	NewThisMonth int     `json:"newThisMonth"`
	TotalOrders  int64   `json:"totalOrders"`
	TotalSpent   float64 `json:"totalSpent"`
	AverageSpent float64 `json:"averageSpent"`
}
