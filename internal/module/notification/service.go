// Package notification adds read tracking and the latest-notifications feed
// to the notifications resource.
package notification

import (
	"context"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/resource"
)

// DefaultLatestLimit is the size of the latest feed when none is requested.
const DefaultLatestLimit = 3

const readField = "read"

// Service implements the notification-specific operations.
type Service struct {
	notifications *resource.Service
}

// NewService creates a notification Service over the notifications façade.
func NewService(notifications *resource.Service) *Service {
	return &Service{notifications: notifications}
}

// Latest returns the newest notifications, at most limit of them.
func (s *Service) Latest(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit < 1 {
		limit = DefaultLatestLimit
	}
	res, err := s.notifications.List(ctx, domain.Query{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, id int64) (domain.Record, error) {
	return s.notifications.Update(ctx, id, domain.Record{readField: true})
}

// MarkAllRead flags every unread notification as read and returns how many
// changed.
func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	records, err := s.notifications.All(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, r := range records {
		if r.Bool(readField) {
			continue
		}
		id, ok := r.ID()
		if !ok {
			continue
		}
		if _, err := s.notifications.Update(ctx, id, domain.Record{readField: true}); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// Unread counts notifications not yet read.
func (s *Service) Unread(ctx context.Context) (int, error) {
	records, err := s.notifications.All(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, r := range records {
		if !r.Bool(readField) {
			n++
		}
	}
	return n, nil
}
