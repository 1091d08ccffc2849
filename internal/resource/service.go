// Package resource is the generic façade shared by every admin resource:
// list through the query pipeline, single-record CRUD through the active
// collection store, and change events after each mutation.
package resource

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/event"
	"github.com/simp-lee/storeadmin/internal/query"
)

const tracerName = "internal/resource"

// Definition describes one resource collection.
type Definition struct {
	// Name is the collection name and the URL segment.
	Name string
	// Label is the human-readable singular used in error messages.
	Label string
	Spec  domain.ListSpec
	// DefaultLimit is the page size used when the caller omits one.
	DefaultLimit int
	// Prepare normalizes and validates a payload before it is stored. It may
	// modify fields in place.
	Prepare func(fields domain.Record, creating bool) error
}

func (d Definition) label() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// Service is the façade for one resource.
type Service struct {
	def    Definition
	store  domain.CollectionStore
	events event.Publisher
	logger *slog.Logger
}

// NewService creates a façade for def over store. A nil publisher disables
// change events; a nil logger uses slog.Default.
func NewService(def Definition, store domain.CollectionStore, events event.Publisher, logger *slog.Logger) *Service {
	if events == nil {
		events = event.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{def: def, store: store, events: events, logger: logger}
}

// Definition returns the resource definition.
func (s *Service) Definition() Definition {
	return s.def
}

// List returns one page of the collection. Stores that implement
// domain.Lister evaluate the query themselves.
func (s *Service) List(ctx context.Context, q domain.Query) (*domain.PageResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "resource.List")
	defer span.End()
	span.SetAttributes(
		attribute.String("resource", s.def.Name),
		attribute.Int("page", q.Page),
		attribute.Int("limit", q.Limit),
	)

	res, err := s.list(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("total", res.Meta.Total))
	return res, nil
}

func (s *Service) list(ctx context.Context, q domain.Query) (*domain.PageResult, error) {
	if err := query.Validate(q); err != nil {
		return nil, err
	}
	if l, ok := s.store.(domain.Lister); ok {
		return l.List(ctx, s.def.Name, q, s.def.Spec)
	}
	records, err := s.store.Load(ctx, s.def.Name)
	if err != nil {
		return nil, err
	}
	return query.Run(records, q, s.def.Spec)
}

// All returns every record of the collection, unpaginated and unsorted.
func (s *Service) All(ctx context.Context) ([]domain.Record, error) {
	return s.store.Load(ctx, s.def.Name)
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Record, error) {
	rec, err := s.store.Get(ctx, s.def.Name, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return rec, nil
}

// Create stores a new record and returns it with its assigned id.
func (s *Service) Create(ctx context.Context, fields domain.Record) (domain.Record, error) {
	fields = fields.Clone()
	if s.def.Prepare != nil {
		if err := s.def.Prepare(fields, true); err != nil {
			return nil, err
		}
	}

	rec, err := s.store.Create(ctx, s.def.Name, fields)
	if err != nil {
		return nil, err
	}
	id, _ := rec.ID()
	s.publish(ctx, event.ActionCreated, id, rec)
	return rec, nil
}

// Update merges fields into the record with the given id.
func (s *Service) Update(ctx context.Context, id int64, fields domain.Record) (domain.Record, error) {
	fields = fields.Clone()
	if s.def.Prepare != nil {
		if err := s.def.Prepare(fields, false); err != nil {
			return nil, err
		}
	}

	rec, err := s.store.Update(ctx, s.def.Name, id, fields)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	s.publish(ctx, event.ActionUpdated, id, rec)
	return rec, nil
}

// Delete removes the record. Deleting a missing id succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, s.def.Name, id); err != nil {
		return err
	}
	s.publish(ctx, event.ActionDeleted, id, nil)
	return nil
}

// notFound rewrites a bare not-found error with the resource label and id.
func (s *Service) notFound(err error, id int64) error {
	if !domain.IsNotFound(err) {
		return err
	}
	return domain.NewAppError(domain.CodeNotFound, fmt.Sprintf("%s %d not found", s.def.label(), id), err)
}

func (s *Service) publish(ctx context.Context, action string, id int64, rec domain.Record) {
	err := s.events.Publish(ctx, event.Change{
		Resource: s.def.Name,
		Action:   action,
		ID:       id,
		Record:   rec,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish change event",
			slog.String("resource", s.def.Name),
			slog.String("action", action),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
	}
}
