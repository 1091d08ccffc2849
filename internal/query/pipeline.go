// Package query implements the list pipeline shared by every resource:
// filter, search, sort newest-first, then paginate.
package query

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// Validate rejects pagination parameters the pipeline cannot evaluate.
func Validate(q domain.Query) error {
	if q.Page < 1 {
		return domain.NewAppError(domain.CodeInvalidQuery, "page must be at least 1", nil)
	}
	if q.Limit < 1 {
		return domain.NewAppError(domain.CodeInvalidQuery, "limit must be at least 1", nil)
	}
	return nil
}

// Run evaluates q over records and returns one page. records is not modified.
//
// Steps are applied in a fixed order: field filters (and the optional
// creation window), free-text search, sort by spec.SortField descending with
// ties kept in collection order, then slicing. An out-of-range page yields
// empty data rather than an error.
func Run(records []domain.Record, q domain.Query, spec domain.ListSpec) (*domain.PageResult, error) {
	if err := Validate(q); err != nil {
		return nil, err
	}

	sortField := spec.SortField
	if sortField == "" {
		sortField = domain.FieldCreatedAt
	}

	matched := make([]domain.Record, 0, len(records))
	filters := activeFilters(q.Filter, spec.FilterFields)
	needle := strings.ToLower(q.Search)
	for _, r := range records {
		if !matchFilters(r, filters) {
			continue
		}
		if !q.CreatedAfter.IsZero() {
			ts, ok := r.Time(sortField)
			if !ok || ts.Before(q.CreatedAfter) {
				continue
			}
		}
		if needle != "" && !matchSearch(r, needle, spec.SearchFields) {
			continue
		}
		matched = append(matched, r)
	}

	SortNewestFirst(matched, sortField)

	return Paginate(matched, q.Page, q.Limit), nil
}

// SortNewestFirst orders records by the timestamp field descending. Missing or
// unparseable timestamps sort as the oldest; equal timestamps keep their
// relative order.
func SortNewestFirst(records []domain.Record, field string) {
	stamps := make([]time.Time, len(records))
	idx := make([]int, len(records))
	for i, r := range records {
		stamps[i], _ = r.Time(field)
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return stamps[b].Compare(stamps[a])
	})
	sorted := make([]domain.Record, len(records))
	for i, j := range idx {
		sorted[i] = records[j]
	}
	copy(records, sorted)
}

// Paginate slices an already filtered and sorted set. page and limit must be
// at least 1. A page past the end yields no data; from saturates at MaxInt
// when the page offset does not fit in an int.
func Paginate(records []domain.Record, page, limit int) *domain.PageResult {
	total := len(records)
	lastPage := total / limit
	if total%limit != 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}

	data := []domain.Record{}
	to := total
	if page <= lastPage {
		start := (page - 1) * limit
		to = min(start+limit, total)
		if start < to {
			data = records[start:to]
		}
	}

	from := math.MaxInt
	if page-1 <= (math.MaxInt-1)/limit {
		from = (page-1)*limit + 1
	}

	return &domain.PageResult{
		Data: data,
		Meta: domain.PageMeta{
			CurrentPage: page,
			PerPage:     limit,
			Total:       total,
			LastPage:    lastPage,
			From:        from,
			To:          to,
		},
	}
}

// activeFilters keeps allowed filter fields whose value is not the "all"
// sentinel or empty.
func activeFilters(filter map[string]string, allowed []string) map[string]string {
	if len(filter) == 0 {
		return nil
	}
	active := make(map[string]string, len(filter))
	for field, value := range filter {
		if value == "" || value == domain.FilterAll {
			continue
		}
		if !slices.Contains(allowed, field) {
			continue
		}
		active[field] = value
	}
	return active
}

func matchFilters(r domain.Record, filters map[string]string) bool {
	for field, want := range filters {
		got, ok := r.String(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func matchSearch(r domain.Record, needle string, fields []string) bool {
	for _, field := range fields {
		v, ok := r.String(field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
