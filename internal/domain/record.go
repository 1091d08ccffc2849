package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reserved record field names managed by the collection store.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Record is a single entry of a collection: an opaque mapping from field name
// to value that always carries an id and a creation timestamp.
type Record map[string]any

// ID returns the record identifier. JSON decoding yields float64 or
// json.Number values, so all numeric representations are accepted.
func (r Record) ID() (int64, bool) {
	return ToInt64(r[FieldID])
}

// CreatedAt parses the creation timestamp. Missing or malformed values
// report false.
func (r Record) CreatedAt() (time.Time, bool) {
	return r.Time(FieldCreatedAt)
}

// Time parses the named field as an RFC 3339 timestamp.
func (r Record) Time(field string) (time.Time, bool) {
	s, ok := r[field].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// String returns the named field rendered as text, and false when absent.
func (r Record) String(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// Float returns the named field as a float64.
func (r Record) Float(field string) float64 {
	f, _ := ToFloat(r[field])
	return f
}

// Bool returns the named field as a bool; anything other than true is false.
func (r Record) Bool(field string) bool {
	b, _ := r[field].(bool)
	return b
}

// Clone returns a shallow copy of the record. Nested values are shared.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FormatTime renders a timestamp in the canonical record format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatValue renders a field value as text for filtering and searching.
// Integral floats print without a fractional part so that an id decoded as
// 1.7e12 still matches its decimal form.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// ToInt64 converts a decoded JSON value to int64.
func ToInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case uint:
		return int64(x), true
	case uint64:
		return int64(x), true
	case float64:
		if x != float64(int64(x)) {
			return 0, false
		}
		return int64(x), true
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// ToFloat converts a decoded JSON value to float64.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
