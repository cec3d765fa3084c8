// Package view derives the search results and pages shown to users.
//
// Every function here is pure: it reads a catalog snapshot and parameters and
// returns a fresh value. Nothing is cached between calls, so a derived page
// can never go stale after a store mutation; callers simply recompute.
//
// Each [Row] carries the record's global index and id next to the product.
// Edits and deletions must be addressed with those, never with the row's
// position inside a page.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jpalmerr/catalog/internal/store"
)

// DefaultPageSize is used when a page size below 1 is requested.
const DefaultPageSize = 5

// Row is one search result.
type Row struct {
	// Index is the product's global index in the unfiltered catalog.
	Index int `json:"index"`

	// Product is the matching record. Product.ID is its stable address.
	Product store.Product `json:"product"`
}

// Page is one page of search results.
type Page struct {
	// Rows holds at most PageSize results, in catalog order.
	Rows []Row `json:"rows"`

	// Number is the effective 1-based page number after clamping.
	Number int `json:"page"`

	// TotalPages is ceil(Total/PageSize), never less than 1.
	TotalPages int `json:"total_pages"`

	// PageSize is the effective page size.
	PageSize int `json:"page_size"`

	// Total is the number of results across all pages.
	Total int `json:"total"`

	// Version is the catalog version the page was derived from.
	Version uint64 `json:"version"`
}

// Filter returns the products whose name contains term, ignoring case.
//
// Relative order is preserved. An empty term matches every product.
func Filter(products []store.Product, term string) []Row {
	folder := cases.Fold()
	needle := folder.String(term)

	rows := make([]Row, 0, len(products))
	for i, p := range products {
		if needle == "" || strings.Contains(folder.String(p.Name), needle) {
			rows = append(rows, Row{Index: i, Product: p})
		}
	}
	return rows
}

// TotalPages returns how many pages count results fill. An empty result
// still has one page.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count-1)/pageSize + 1
}

// ClampPage limits page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Paginate returns the requested 1-based page of rows.
//
// The page number is clamped to the available pages, so asking for a page
// past the end yields the last page.
func Paginate(rows []Row, pageSize, page int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(rows), pageSize)
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(rows))

	out := make([]Row, end-start)
	copy(out, rows[start:end])

	return Page{
		Rows:       out,
		Number:     page,
		TotalPages: total,
		PageSize:   pageSize,
		Total:      len(rows),
	}
}

// Query filters a snapshot by term and returns the requested page.
func Query(snap store.Snapshot, term string, pageSize, page int) Page {
	p := Paginate(Filter(snap.Products, term), pageSize, page)
	p.Version = snap.Version
	return p
}
