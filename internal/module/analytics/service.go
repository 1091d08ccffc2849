// Package analytics computes dashboard counters and sales series from the
// stored collections.
package analytics

import (
	"context"
	"math"
	"time"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/resource"
)

// Sales periods.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Sources are the resource façades the analytics read from.
type Sources struct {
	Orders        *resource.Service
	Products      *resource.Service
	Users         *resource.Service
	Notifications *resource.Service
}

// Service computes analytics.
type Service struct {
	src Sources
	now func() time.Time
}

// NewService creates an analytics Service over src.
func NewService(src Sources) *Service {
	return &Service{src: src, now: time.Now}
}

// Dashboard returns the headline counters. Revenue excludes cancelled
// orders; pending covers received, viewed and processing.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := s.src.Orders.All(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.src.Products.All(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.src.Users.All(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := s.src.Notifications.All(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalOrders:   len(orders),
		TotalProducts: len(products),
		TotalUsers:    len(users),
	}
	for _, o := range orders {
		status, _ := o.String("status")
		if status != catalog.StatusCancelled {
			d.TotalRevenue += o.Float("total")
		}
		if catalog.IsPending(status) {
			d.PendingOrders++
		}
	}
	d.TotalRevenue = round2(d.TotalRevenue)
	for _, n := range notifications {
		if !n.Bool("read") {
			d.UnreadNotifications++
		}
	}
	return d, nil
}

// Sales buckets non-cancelled order revenue by day for week (7 days) and
// month (30 days), and by calendar month for year (12 months). The current
// day or month is the last bucket. An empty period means week.
func (s *Service) Sales(ctx context.Context, period string) (*Sales, error) {
	now := s.now()
	points, layout, err := buckets(period, now)
	if err != nil {
		return nil, err
	}
	if period == "" {
		period = PeriodWeek
	}

	orders, err := s.src.Orders.All(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(points))
	for i, p := range points {
		index[p.Period] = i
	}
	for _, o := range orders {
		if status, _ := o.String("status"); status == catalog.StatusCancelled {
			continue
		}
		created, ok := o.CreatedAt()
		if !ok {
			continue
		}
		i, ok := index[created.In(now.Location()).Format(layout)]
		if !ok {
			continue
		}
		points[i].Orders++
		points[i].Revenue += o.Float("total")
	}
	for i := range points {
		points[i].Revenue = round2(points[i].Revenue)
	}
	return &Sales{Period: period, Points: points}, nil
}

func buckets(period string, now time.Time) ([]SalesPoint, string, error) {
	y, m, d := now.Date()
	switch period {
	case "", PeriodWeek, PeriodMonth:
		days := 7
		if period == PeriodMonth {
			days = 30
		}
		today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		points := make([]SalesPoint, days)
		for i := range points {
			points[i].Period = today.AddDate(0, 0, i-days+1).Format(dayLayout)
		}
		return points, dayLayout, nil
	case PeriodYear:
		first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		points := make([]SalesPoint, 12)
		for i := range points {
			points[i].Period = first.AddDate(0, i-11, 0).Format(monthLayout)
		}
		return points, monthLayout, nil
	default:
		return nil, "", domain.NewAppError(domain.CodeInvalidQuery, "period must be one of week, month, year", nil)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
