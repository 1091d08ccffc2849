package order

// UpdateStatusRequest represents the input for changing an order's status.
type UpdateStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=received viewed processing shipped delivered cancelled"`
	TrackingNumber string `json:"tracking_number" binding:"omitempty,max=64"`
}

// Stats summarizes the orders collection.
type Stats struct {
	Total    int            `json:"total"`
	Pending  int            `json:"pending"`
	Revenue  float64        `json:"revenue"`
	ByStatus map[string]int `json:"byStatus"`
}
