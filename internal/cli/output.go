package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// summaryFields are tried in order for the one-line description of a record.
var summaryFields = []string{"name", "title", "customerName", "page", "message"}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writePage prints a page as an aligned table followed by its position.
func writePage(w io.Writer, page *domain.PageResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSUMMARY\tCREATED")
	for _, rec := range page.Data {
		id, _ := rec.ID()
		created, _ := rec.String(domain.FieldCreatedAt)
		fmt.Fprintf(tw, "%d\t%s\t%s\n", id, summary(rec), created)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	m := page.Meta
	_, err := fmt.Fprintf(w, "page %d of %d, %d total\n", m.CurrentPage, m.LastPage, m.Total)
	return err
}

// writeFields prints one record as sorted key: value lines.
func writeFields(w io.Writer, rec domain.Record) error {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", k, displayValue(rec[k]))
	}
	return tw.Flush()
}

func summary(rec domain.Record) string {
	for _, f := range summaryFields {
		if v, ok := rec.String(f); ok && v != "" {
			return v
		}
	}
	return "-"
}

func displayValue(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return domain.FormatValue(v)
	}
}
