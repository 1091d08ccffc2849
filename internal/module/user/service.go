// Package user adds statistics to the users resource.
package user

import (
	"context"
	"math"
	"time"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/resource"
)

// Service implements the user-specific operations.
type Service struct {
	users *resource.Service
	now   func() time.Time
}

// NewService creates a user Service over the users façade.
func NewService(users *resource.Service) *Service {
	return &Service{users: users, now: time.Now}
}

// Stats aggregates the stored per-user order counts and spend. Users created
// in the last 30 days count as new.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	records, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	since := s.now().AddDate(0, 0, -30)
	st := &Stats{Total: len(records)}
	for _, r := range records {
		if n, ok := domain.ToInt64(r["orderCount"]); ok {
			st.TotalOrders += n
		}
		st.TotalSpent += r.Float("totalSpent")
		if created, ok := r.CreatedAt(); ok && !created.Before(since) {
			st.NewThisMonth++
		}
	}
	if st.Total > 0 {
		st.AverageSpent = round2(st.TotalSpent / float64(st.Total))
	}
	st.TotalSpent = round2(st.TotalSpent)
	return st, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
