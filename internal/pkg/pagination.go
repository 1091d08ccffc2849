package pkg

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Date window names accepted by the date query parameter.
const (
	WindowToday = "today"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// ParseQuery extracts page, limit, search, filters, and the creation window
// from query params. Only fields listed in spec.FilterFields are read as
// filters. A limit above the maximum is clamped; malformed numbers and
// non-positive values are rejected.
func ParseQuery(c *gin.Context, spec domain.ListSpec, fallbackLimit int) (domain.Query, error) {
	if fallbackLimit < 1 {
		fallbackLimit = defaultLimit
	}

	page, err := intParam(c, "page", defaultPage)
	if err != nil {
		return domain.Query{}, err
	}
	limit, err := intParam(c, "limit", fallbackLimit)
	if err != nil {
		return domain.Query{}, err
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := domain.Query{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}

	for _, field := range spec.FilterFields {
		if v, ok := c.GetQuery(field); ok && v != "" {
			if q.Filter == nil {
				q.Filter = make(map[string]string, len(spec.FilterFields))
			}
			q.Filter[field] = v
		}
	}

	if raw := c.Query("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return domain.Query{}, domain.NewAppError(domain.CodeInvalidQuery, "created_after must be an RFC 3339 timestamp", err)
		}
		q.CreatedAfter = t
	}
	if raw := c.Query("date"); raw != "" {
		t, err := DateWindow(raw, time.Now())
		if err != nil {
			return domain.Query{}, err
		}
		if !t.IsZero() {
			q.CreatedAfter = t
		}
	}

	return q, nil
}

// DateWindow returns the start of the named window ending at now: the
// start of today, or 7 or 30 days back. "all" and "" yield the zero time.
func DateWindow(name string, now time.Time) (time.Time, error) {
	switch strings.ToLower(name) {
	case "", domain.FilterAll:
		return time.Time{}, nil
	case WindowToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	case WindowWeek:
		return now.AddDate(0, 0, -7), nil
	case WindowMonth:
		return now.AddDate(0, 0, -30), nil
	default:
		return time.Time{}, domain.NewAppError(domain.CodeInvalidQuery, "date must be one of today, week, month, all", nil)
	}
}

// ParseID reads the :id path parameter as a record identifier.
func ParseID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewAppError(domain.CodeValidation, "invalid id: "+raw, err)
	}
	return id, nil
}

func intParam(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewAppError(domain.CodeInvalidQuery, name+" must be an integer", err)
	}
	if n < 1 {
		return 0, domain.NewAppError(domain.CodeInvalidQuery, name+" must be at least 1", nil)
	}
	return n, nil
}
