// Package settings serves the store settings document.
package settings

import (
	"context"
	"log/slog"
	"maps"
	"strings"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/event"
)

// Service reads and merges the settings document. Stored values are laid
// over the defaults, so a fresh store still answers every known key.
type Service struct {
	docs     domain.DocumentStore
	defaults domain.Record
	events   event.Publisher
	logger   *slog.Logger
}

// NewService creates a settings Service. defaults may be nil.
func NewService(docs domain.DocumentStore, defaults domain.Record, events event.Publisher, logger *slog.Logger) *Service {
	if events == nil {
		events = event.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{docs: docs, defaults: defaults.Clone(), events: events, logger: logger}
}

// Get returns the effective settings.
func (s *Service) Get(ctx context.Context) (domain.Record, error) {
	stored, err := s.docs.LoadDocument(ctx, catalog.SettingsDocument)
	if err != nil {
		return nil, err
	}
	out := s.defaults.Clone()
	if out == nil {
		out = domain.Record{}
	}
	maps.Copy(out, stored)
	return out, nil
}

// Update merges fields into the stored settings and returns the result.
func (s *Service) Update(ctx context.Context, fields domain.Record) (domain.Record, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	maps.Copy(current, fields)

	saved, err := s.docs.SaveDocument(ctx, catalog.SettingsDocument, current)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, saved)
	return saved, nil
}

// GetKey returns one setting.
func (s *Service) GetKey(ctx context.Context, key string) (any, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	v, ok := current[key]
	if !ok {
		return nil, domain.NewAppError(domain.CodeNotFound, "setting "+key+" not found", nil)
	}
	return v, nil
}

// UpdateKey sets one setting and returns the full settings.
func (s *Service) UpdateKey(ctx context.Context, key string, value any) (domain.Record, error) {
	if strings.TrimSpace(key) == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "setting key is required", nil)
	}
	return s.Update(ctx, domain.Record{key: value})
}

func (s *Service) publish(ctx context.Context, doc domain.Record) {
	err := s.events.Publish(ctx, event.Change{
		Resource: catalog.SettingsDocument,
		Action:   event.ActionUpdated,
		Record:   doc,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish settings change", slog.Any("error", err))
	}
}
