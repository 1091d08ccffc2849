// Package catalog defines the admin resources: their collection names,
// filterable and searchable fields, and per-resource payload rules.
package catalog

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/resource"
)

// Collection names.
const (
	Orders        = "orders"
	Products      = "products"
	Categories    = "categories"
	Media         = "media"
	Notifications = "notifications"
	Users         = "users"
	Pages         = "pages"
	Logs          = "logs"
)

// SettingsDocument is the name of the store settings document.
const SettingsDocument = "settings"

// Order statuses.
const (
	StatusReceived   = "received"
	StatusViewed     = "viewed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// OrderStatuses lists every valid order status in lifecycle order.
var OrderStatuses = []string{
	StatusReceived, StatusViewed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

// PendingStatuses are the statuses of orders awaiting fulfilment.
var PendingStatuses = []string{StatusReceived, StatusViewed, StatusProcessing}

// MaxMediaSize is the largest accepted media upload in bytes.
const MaxMediaSize = 10 << 20

// LogTimestampField is the field activity logs are ordered by.
const LogTimestampField = "timestamp"

var validate = validator.New()

// Definitions returns every resource definition.
func Definitions() []resource.Definition {
	return []resource.Definition{
		{
			Name:  Orders,
			Label: "order",
			Spec: domain.ListSpec{
				FilterFields: []string{"status"},
				SearchFields: []string{domain.FieldID, "customerName"},
			},
			DefaultLimit: 10,
			Prepare:      prepareOrder,
		},
		{
			Name:  Products,
			Label: "product",
			Spec: domain.ListSpec{
				FilterFields: []string{"category"},
				SearchFields: []string{"name", "description"},
			},
			DefaultLimit: 10,
			Prepare:      requireString("name"),
		},
		{
			Name:  Categories,
			Label: "category",
			Spec: domain.ListSpec{
				SearchFields: []string{"name", "description"},
			},
			DefaultLimit: 50,
			Prepare:      requireString("name"),
		},
		{
			Name:  Media,
			Label: "media",
			Spec: domain.ListSpec{
				FilterFields: []string{"folder"},
				SearchFields: []string{"name"},
			},
			DefaultLimit: 10,
			Prepare:      prepareMedia,
		},
		{
			Name:  Notifications,
			Label: "notification",
			Spec: domain.ListSpec{
				FilterFields: []string{"read", "type"},
			},
			DefaultLimit: 10,
			Prepare:      prepareNotification,
		},
		{
			Name:  Users,
			Label: "user",
			Spec: domain.ListSpec{
				SearchFields: []string{"name", "email", "phone"},
			},
			DefaultLimit: 10,
			Prepare:      prepareUser,
		},
		{
			Name:  Pages,
			Label: "page",
			Spec: domain.ListSpec{
				FilterFields: []string{"published"},
				SearchFields: []string{"title", "slug"},
			},
			DefaultLimit: 10,
			Prepare:      preparePage,
		},
		{
			Name:  Logs,
			Label: "log",
			Spec: domain.ListSpec{
				SearchFields: []string{"ip", "page", "userAgent"},
				SortField:    LogTimestampField,
			},
			DefaultLimit: 10,
			Prepare:      prepareLog,
		},
	}
}

// Lookup returns the definition with the given collection name.
func Lookup(name string) (resource.Definition, bool) {
	for _, d := range Definitions() {
		if d.Name == name {
			return d, true
		}
	}
	return resource.Definition{}, false
}

// Names returns every collection name.
func Names() []string {
	defs := Definitions()
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	return names
}

func invalid(msg string) error {
	return domain.NewAppError(domain.CodeValidation, msg, nil)
}

// requireString returns a Prepare hook that demands a non-blank string
// field on create and rejects blanking it on update.
func requireString(field string) func(domain.Record, bool) error {
	return func(fields domain.Record, creating bool) error {
		return checkRequired(fields, creating, field)
	}
}

func checkRequired(fields domain.Record, creating bool, field string) error {
	v, present := fields[field]
	if !present {
		if creating {
			return invalid(field + " is required")
		}
		return nil
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return invalid(field + " is required")
	}
	fields[field] = strings.TrimSpace(s)
	return nil
}

func prepareOrder(fields domain.Record, creating bool) error {
	if creating {
		if _, ok := fields["status"]; !ok {
			fields["status"] = StatusReceived
		}
	}
	if v, ok := fields["status"]; ok {
		return ValidateStatus(v)
	}
	return nil
}

// ValidateStatus checks that v is a known order status.
func ValidateStatus(v any) error {
	s, _ := v.(string)
	if err := validate.Var(s, "required,oneof="+strings.Join(OrderStatuses, " ")); err != nil {
		return domain.NewAppError(domain.CodeValidation, "status must be one of "+strings.Join(OrderStatuses, ", "), err)
	}
	return nil
}

func prepareMedia(fields domain.Record, creating bool) error {
	if err := checkRequired(fields, creating, "name"); err != nil {
		return err
	}
	if !creating {
		return nil
	}

	mime, _ := fields["type"].(string)
	if err := validate.Var(mime, "required,startswith=image/"); err != nil {
		return domain.NewAppError(domain.CodeValidation, "only image files are allowed", err)
	}
	size, ok := domain.ToFloat(fields["size"])
	if !ok || size < 0 {
		return invalid("size must be a non-negative number")
	}
	if size > MaxMediaSize {
		return invalid("file size must be less than 10MB")
	}
	if _, ok := fields["originalName"]; !ok {
		fields["originalName"] = fields["name"]
	}
	if _, ok := fields["folder"]; !ok {
		fields["folder"] = ""
	}
	return nil
}

func prepareNotification(fields domain.Record, creating bool) error {
	if err := checkRequired(fields, creating, "title"); err != nil {
		return err
	}
	if creating {
		if _, ok := fields["read"]; !ok {
			fields["read"] = false
		}
	}
	if v, ok := fields["read"]; ok {
		if _, isBool := v.(bool); !isBool {
			return invalid("read must be a boolean")
		}
	}
	return nil
}

func prepareUser(fields domain.Record, creating bool) error {
	if err := checkRequired(fields, creating, "name"); err != nil {
		return err
	}
	if v, ok := fields["email"]; ok {
		s, _ := v.(string)
		if err := validate.Var(s, "required,email"); err != nil {
			return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", err)
		}
	}
	if creating {
		for _, f := range []string{"orderCount", "totalSpent"} {
			if _, ok := fields[f]; !ok {
				fields[f] = 0
			}
		}
	}
	return nil
}

var nonSlug = regexp.MustCompile(`\s+`)

// Slugify lowercases title and joins its words with hyphens.
func Slugify(title string) string {
	return nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}

func preparePage(fields domain.Record, creating bool) error {
	if err := checkRequired(fields, creating, "title"); err != nil {
		return err
	}
	if !creating {
		return nil
	}
	if slug, _ := fields["slug"].(string); strings.TrimSpace(slug) == "" {
		title, _ := fields["title"].(string)
		fields["slug"] = Slugify(title)
	}
	if _, ok := fields["published"]; !ok {
		fields["published"] = false
	}
	return nil
}

func prepareLog(fields domain.Record, creating bool) error {
	if !creating {
		return nil
	}
	if _, ok := fields[LogTimestampField]; !ok {
		fields[LogTimestampField] = domain.FormatTime(time.Now())
	}
	return nil
}

// IsPending reports whether an order status counts as pending.
func IsPending(status string) bool {
	return slices.Contains(PendingStatuses, status)
}
