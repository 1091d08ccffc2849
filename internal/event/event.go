// Package event publishes record change notifications after successful
// mutations.
package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// Actions carried by change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// DefaultSubjectPrefix is used when no prefix is configured.
const DefaultSubjectPrefix = "storeadmin"

// Change describes one mutation of a resource collection.
type Change struct {
	Resource string         `json:"resource"`
	Action   string         `json:"action"`
	ID       int64          `json:"id"`
	Record   map[string]any `json:"record,omitempty"`
	At       time.Time      `json:"at"`
}

// Publisher delivers change events.
type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Change) error { return nil }

// NATS publishes events as JSON on <prefix>.<resource>.<action>.
type NATS struct {
	nc     *nats.Conn
	prefix string
}

// NewNATS wraps an established connection.
func NewNATS(nc *nats.Conn, prefix string) (*NATS, error) {
	if nc == nil {
		return nil, errors.New("nats connection is nil")
	}
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATS{nc: nc, prefix: strings.TrimSuffix(prefix, ".")}, nil
}

// Connect dials url and returns a publisher that owns the connection.
func Connect(url, prefix string) (*NATS, error) {
	nc, err := nats.Connect(url, nats.Name("storeadmin"))
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return NewNATS(nc, prefix)
}

// Subject returns the subject a change is published on.
func (p *NATS) Subject(c Change) string {
	return p.prefix + "." + c.Resource + "." + c.Action
}

// Publish serializes c and publishes it. Trace context from ctx is carried
// in the message headers.
func (p *NATS) Publish(ctx context.Context, c Change) error {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode change: %w", err)
	}
	msg := &nats.Msg{
		Subject: p.Subject(c),
		Data:    data,
		Header:  nats.Header{},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier(msg.Header))
	return p.nc.PublishMsg(msg)
}

// Connected reports whether the underlying connection is up.
func (p *NATS) Connected() bool {
	return p.nc.IsConnected()
}

// Close drains and closes the underlying connection.
func (p *NATS) Close() error {
	return p.nc.Drain()
}

// headerCarrier adapts nats headers to the OTel TextMapCarrier interface.
type headerCarrier nats.Header

func (h headerCarrier) Get(key string) string { return nats.Header(h).Get(key) }

func (h headerCarrier) Set(key, val string) { nats.Header(h).Set(key, val) }

func (h headerCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	return keys
}
