package domain

import "time"

// FilterAll is the sentinel filter value meaning "no restriction".
const FilterAll = "all"

// Query holds pagination, free-text search, and field filters for a list call.
type Query struct {
	Page   int
	Limit  int
	Search string
	Filter map[string]string
	// CreatedAfter, when non-zero, keeps only records created at or after it.
	CreatedAfter time.Time
}

// PageMeta is the pagination metadata returned with every list page.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
	From        int `json:"from"`
	To          int `json:"to"`
}

// PageResult is one page of filtered, sorted records plus its metadata.
type PageResult struct {
	Data []Record `json:"data"`
	Meta PageMeta `json:"meta"`
}
