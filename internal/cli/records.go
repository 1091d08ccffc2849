package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/domain"
	"github.com/simp-lee/storeadmin/internal/pkg"
	"github.com/simp-lee/storeadmin/internal/resource"
)

const maxListLimit = 100

// userError marks failures caused by bad input rather than the system.
type userError struct{ msg string }

func (e *userError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}

func isUserError(err error) bool {
	var ue *userError
	if errors.As(err, &ue) {
		return true
	}
	return domain.IsNotFound(err) || domain.IsValidation(err) ||
		domain.IsInvalidQuery(err) || domain.IsAlreadyExists(err)
}

func (s *session) service(name string) (*resource.Service, error) {
	svc, ok := s.services[name]
	if !ok {
		return nil, usageErrorf("unknown resource %q (valid: %s)", name, strings.Join(catalog.Names(), ", "))
	}
	return svc, nil
}

type listFlags struct {
	page   int
	limit  int
	search string
	date   string
}

func newListCmd(s *session) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list <resource> [field=value...]",
		Short: "List records of a resource",
		Long: `List returns one page of records, newest first.

Filters are field=value pairs on the resource's filterable fields and are
ANDed together. A value of "all" means no restriction.

Example:
  adminctl list orders status=shipped
  adminctl list products --search laptop --limit 5
  adminctl list notifications read=false --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.service(args[0])
			if err != nil {
				return err
			}
			q, err := buildQuery(svc.Definition(), f, args[1:], time.Now())
			if err != nil {
				return err
			}
			page, err := svc.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			return writePage(cmd.OutOrStdout(), page)
		},
	}
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "page size (default: resource default)")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive text search")
	cmd.Flags().StringVar(&f.date, "date", "", "creation window: today, week, month, all")
	return cmd
}

// buildQuery turns list flags and field=value filters into a domain.Query.
func buildQuery(def resource.Definition, f listFlags, filters []string, now time.Time) (domain.Query, error) {
	if f.page < 1 {
		return domain.Query{}, usageErrorf("--page must be at least 1")
	}
	limit := f.limit
	if limit == 0 {
		limit = def.DefaultLimit
	}
	if limit < 1 {
		return domain.Query{}, usageErrorf("--limit must be at least 1")
	}

	q := domain.Query{
		Page:   f.page,
		Limit:  min(limit, maxListLimit),
		Search: f.search,
	}
	for _, arg := range filters {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return domain.Query{}, usageErrorf("invalid filter %q (expected field=value)", arg)
		}
		if !slices.Contains(def.Spec.FilterFields, key) {
			return domain.Query{}, usageErrorf("%s cannot be filtered by %q", def.Name, key)
		}
		if q.Filter == nil {
			q.Filter = make(map[string]string, len(filters))
		}
		q.Filter[key] = value
	}

	after, err := pkg.DateWindow(f.date, now)
	if err != nil {
		return domain.Query{}, err
	}
	q.CreatedAfter = after
	return q, nil
}

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Get a record by id",
		Example: `  adminctl get orders 1
  adminctl get users 1700000000123 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.service(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			rec, err := svc.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return s.writeRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newCreateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "create <resource> <json|->",
		Short: "Create a record from a JSON object",
		Long: `Create stores a new record. The fields are given as a JSON object, or
read from standard input when the argument is "-". The id and createdAt
fields are assigned by the store.`,
		Example: `  adminctl create categories '{"name":"Books"}'
  cat product.json | adminctl create products -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.service(args[0])
			if err != nil {
				return err
			}
			fields, err := readFields(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			rec, err := svc.Create(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return s.writeRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newUpdateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "update <resource> <id> <json|->",
		Short: "Merge fields into a record",
		Example: `  adminctl update orders 2 '{"status":"shipped"}'
  adminctl update notifications 1 '{"read":true}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.service(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			fields, err := readFields(args[2], cmd.InOrStdin())
			if err != nil {
				return err
			}
			rec, err := svc.Update(cmd.Context(), id, fields)
			if err != nil {
				return err
			}
			return s.writeRecord(cmd.OutOrStdout(), rec)
		},
	}
}

func newDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := s.service(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			if s.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"deleted": id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %d\n", svc.Definition().Name, id)
			return nil
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageErrorf("invalid id %q", raw)
	}
	return id, nil
}

// readFields decodes a JSON object from arg, or from in when arg is "-".
func readFields(arg string, in io.Reader) (domain.Record, error) {
	data := []byte(arg)
	if arg == "-" {
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = b
	}

	var fields domain.Record
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, usageErrorf("fields must be a JSON object")
	}
	return fields, nil
}

func (s *session) writeRecord(w io.Writer, rec domain.Record) error {
	if s.jsonMode {
		return writeJSON(w, rec)
	}
	return writeFields(w, rec)
}
