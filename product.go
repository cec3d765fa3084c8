package catalog

import (
	"github.com/jpalmerr/catalog/internal/input"
	"github.com/jpalmerr/catalog/internal/store"
	"github.com/jpalmerr/catalog/internal/view"
)

var (
	// ErrInvalidInput is returned when a product is submitted without a name
	// or with a negative price. The catalog is left unchanged.
	ErrInvalidInput = input.ErrInvalidInput

	// ErrOutOfRange is returned when a global index is outside [0, Len()).
	ErrOutOfRange = store.ErrOutOfRange

	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = store.ErrNotFound
)

// Product is a record in the catalog.
type Product struct {
	// ID is assigned by the catalog when the product is added and never
	// changes. It is the stable way to address a product.
	ID string

	// Name is the product's display name. Never empty.
	Name string

	// Price is the product's price. Never negative.
	Price float64
}

// ProductInput is the data submitted to [Catalog.Add] and [Catalog.Edit].
type ProductInput struct {
	Name  string
	Price float64
}

// ChangeKind identifies the mutation reported by a [Change].
type ChangeKind string

const (
	// ChangeAdded reports a product appended by [Catalog.Add].
	ChangeAdded ChangeKind = ChangeKind(store.ChangeAdded)

	// ChangeEdited reports a product replaced in place.
	ChangeEdited ChangeKind = ChangeKind(store.ChangeEdited)

	// ChangeRemoved reports a product deleted from the catalog. Every product
	// after Index moved down by one.
	ChangeRemoved ChangeKind = ChangeKind(store.ChangeRemoved)
)

// Change is delivered to callbacks registered with [WithChangeCallback].
type Change struct {
	Kind    ChangeKind
	Product Product

	// Index is the global index the mutation touched.
	Index int

	// Version is the catalog version after the mutation.
	Version uint64
}

// Row is one search result.
//
// Index is the product's global index and Product.ID its stable id; use one
// of those (preferably the id) to edit or remove the row. A row's position
// within [Page.Rows] is a display position only.
type Row struct {
	Index   int
	Product Product
}

// Page is one page of search results, derived from a single catalog snapshot.
type Page struct {
	Rows []Row

	// Number is the 1-based page actually returned after clamping.
	Number int

	// TotalPages is at least 1, even when nothing matches.
	TotalPages int

	PageSize int

	// Total counts matches across all pages.
	Total int

	// Version is the catalog version the page reflects.
	Version uint64
}

func toProduct(p store.Product) Product {
	return Product{ID: p.ID, Name: p.Name, Price: p.Price}
}

func toChange(c store.Change) Change {
	return Change{
		Kind:    ChangeKind(c.Kind),
		Product: toProduct(c.Product),
		Index:   c.Index,
		Version: c.Version,
	}
}

func toPage(p view.Page) Page {
	rows := make([]Row, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = Row{Index: r.Index, Product: toProduct(r.Product)}
	}
	return Page{
		Rows:       rows,
		Number:     p.Number,
		TotalPages: p.TotalPages,
		PageSize:   p.PageSize,
		Total:      p.Total,
		Version:    p.Version,
	}
}

// validateInput runs required-field checks on a submitted product.
func validateInput(in ProductInput) (store.Product, error) {
	return input.Validate(input.Product{Name: in.Name, Price: input.Float(in.Price)})
}
