package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// DefaultPrefix namespaces every key written by the local store.
const DefaultPrefix = "tataibari_"

// Local is a collection store that keeps one serialized array per collection
// in a KV, keyed by prefix + collection name.
type Local struct {
	kv     KV
	prefix string
	seq    *sequence
	logger *slog.Logger
}

// LocalOption configures a Local store.
type LocalOption func(*Local)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) LocalOption {
	return func(l *Local) { l.seq = newSequence(now) }
}

// WithLogger sets the logger used to report undecodable stored data.
func WithLogger(logger *slog.Logger) LocalOption {
	return func(l *Local) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLocal creates a Local store over kv.
func NewLocal(kv KV, prefix string, opts ...LocalOption) *Local {
	l := &Local{
		kv:     kv,
		prefix: prefix,
		seq:    newSequence(time.Now),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) key(name string) string {
	return l.prefix + name
}

// Load returns all records of the collection. A missing key or a value that
// cannot be decoded yields an empty collection.
func (l *Local) Load(ctx context.Context, collection string) ([]domain.Record, error) {
	raw, ok, err := l.kv.Get(ctx, l.key(collection))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Record{}, nil
	}
	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		l.logger.WarnContext(ctx, "discarding undecodable collection",
			slog.String("collection", collection),
			slog.Any("error", err),
		)
		return []domain.Record{}, nil
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// Save replaces the stored collection. Last writer wins.
func (l *Local) Save(ctx context.Context, collection string, records []domain.Record) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, l.key(collection), raw)
}

// SaveAll replaces several collections in one write.
func (l *Local) SaveAll(ctx context.Context, collections map[string][]domain.Record) error {
	entries := make(map[string][]byte, len(collections))
	for name, records := range collections {
		raw, err := encodeRecords(records)
		if err != nil {
			return err
		}
		entries[l.key(name)] = raw
	}
	return l.kv.SetMany(ctx, entries)
}

// Get returns the record with the given id.
func (l *Local) Get(ctx context.Context, collection string, id int64) (domain.Record, error) {
	records, err := l.Load(ctx, collection)
	if err != nil {
		return nil, err
	}
	if i := indexOf(records, id); i >= 0 {
		return records[i], nil
	}
	return nil, domain.ErrNotFound
}

// Create appends a record with a fresh id and creation timestamp.
func (l *Local) Create(ctx context.Context, collection string, fields domain.Record) (domain.Record, error) {
	records, err := l.Load(ctx, collection)
	if err != nil {
		return nil, err
	}

	id, ts := l.seq.next(maxID(records))
	rec := fields.Clone()
	rec[domain.FieldID] = id
	rec[domain.FieldCreatedAt] = domain.FormatTime(ts)

	records = append(records, rec)
	if err := l.Save(ctx, collection, records); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update merges fields over the stored record. id and createdAt cannot be
// overwritten.
func (l *Local) Update(ctx context.Context, collection string, id int64, fields domain.Record) (domain.Record, error) {
	records, err := l.Load(ctx, collection)
	if err != nil {
		return nil, err
	}
	i := indexOf(records, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	merged := records[i].Clone()
	for k, v := range fields {
		if k == domain.FieldID || k == domain.FieldCreatedAt {
			continue
		}
		merged[k] = v
	}
	merged[domain.FieldUpdatedAt] = domain.FormatTime(l.seq.stamp())
	records[i] = merged

	if err := l.Save(ctx, collection, records); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete removes every record with the id. A missing id leaves the
// collection untouched.
func (l *Local) Delete(ctx context.Context, collection string, id int64) error {
	records, err := l.Load(ctx, collection)
	if err != nil {
		return err
	}
	kept := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if rid, ok := r.ID(); ok && rid == id {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == len(records) {
		return nil
	}
	return l.Save(ctx, collection, kept)
}

// LoadDocument returns the named document, or an empty one when absent.
func (l *Local) LoadDocument(ctx context.Context, name string) (domain.Record, error) {
	raw, ok, err := l.kv.Get(ctx, l.key(name))
	if err != nil {
		return nil, err
	}
	doc := domain.Record{}
	if !ok {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		l.logger.WarnContext(ctx, "discarding undecodable document",
			slog.String("document", name),
			slog.Any("error", err),
		)
		return domain.Record{}, nil
	}
	return doc, nil
}

// SaveDocument replaces the named document.
func (l *Local) SaveDocument(ctx context.Context, name string, doc domain.Record) (domain.Record, error) {
	if doc == nil {
		doc = domain.Record{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, "document is not serializable", err)
	}
	if err := l.kv.Set(ctx, l.key(name), raw); err != nil {
		return nil, err
	}
	return doc, nil
}

func encodeRecords(records []domain.Record) ([]byte, error) {
	if records == nil {
		records = []domain.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, "record is not serializable", err)
	}
	return raw, nil
}

func indexOf(records []domain.Record, id int64) int {
	for i, r := range records {
		if rid, ok := r.ID(); ok && rid == id {
			return i
		}
	}
	return -1
}

func maxID(records []domain.Record) int64 {
	var m int64
	for _, r := range records {
		if id, ok := r.ID(); ok && id > m {
			m = id
		}
	}
	return m
}
