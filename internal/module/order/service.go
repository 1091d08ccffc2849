// Package order adds status changes and statistics to the orders resource.
package order

import (
	"context"
	"math"
	"strings"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/resource"
)

// TrackingNumberField is the order field holding the shipment tracking number.
const TrackingNumberField = "tracking_number"

// Service implements the order-specific operations on top of the generic
// orders façade.
type Service struct {
	orders *resource.Service
}

// NewService creates an order Service over the orders façade.
func NewService(orders *resource.Service) *Service {
	return &Service{orders: orders}
}

// UpdateStatus sets the status of an order and, when given, its tracking
// number.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status, trackingNumber string) (domain.Record, error) {
	fields := domain.Record{"status": status}
	if tn := strings.TrimSpace(trackingNumber); tn != "" {
		fields[TrackingNumberField] = tn
	}
	return s.orders.Update(ctx, id, fields)
}

// Stats counts orders per status. Revenue excludes cancelled orders.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	records, err := s.orders.All(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{ByStatus: make(map[string]int, len(catalog.OrderStatuses))}
	for _, status := range catalog.OrderStatuses {
		st.ByStatus[status] = 0
	}
	for _, r := range records {
		st.Total++
		status, _ := r.String("status")
		st.ByStatus[status]++
		if catalog.IsPending(status) {
			st.Pending++
		}
		if status != catalog.StatusCancelled {
			st.Revenue += r.Float("total")
		}
	}
	st.Revenue = math.Round(st.Revenue*100) / 100
	return st, nil
}
