package store

import "errors"

var (
	// ErrOutOfRange is returned when a global index is outside [0, len).
	ErrOutOfRange = errors.New("index out of range")

	// ErrNotFound is returned when no product has the requested id.
	ErrNotFound = errors.New("product not found")
)

// Product is a single catalog record in storage.
type Product struct {
	// ID is the surrogate identity assigned when the product is added.
	// It never changes and is never reused.
	ID string `json:"id"`

	// Name is the product's display name.
	Name string `json:"name"`

	// Price is the product's price. Never negative.
	Price float64 `json:"price"`
}

// ChangeKind identifies which mutation produced a [Change].
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeEdited  ChangeKind = "edited"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes one applied mutation.
type Change struct {
	// Kind is the mutation that was applied.
	Kind ChangeKind `json:"kind"`

	// Product is the record after the mutation (for removals, the record
	// that was removed).
	Product Product `json:"product"`

	// Index is the global index the mutation touched. For removals it is the
	// index the record occupied before it was removed.
	Index int `json:"index"`

	// Version is the catalog version after the mutation.
	Version uint64 `json:"version"`
}

// Snapshot is a point-in-time copy of the catalog.
type Snapshot struct {
	// Version increments on every successful mutation; two snapshots with
	// the same version hold the same records.
	Version uint64 `json:"version"`

	// Products holds the records in catalog order.
	Products []Product `json:"products"`
}

// Store defines the catalog operations.
//
// Store implementations must be safe for concurrent access. Rejected
// operations leave the catalog and its version untouched and notify nobody.
type Store interface {
	// Add appends a product and returns it with its assigned id.
	Add(p Product) Product

	// EditAt replaces the name and price of the product at a global index.
	EditAt(index int, p Product) (Product, error)

	// Edit replaces the name and price of the product with the given id.
	Edit(id string, p Product) (Product, error)

	// RemoveAt deletes the product at a global index.
	RemoveAt(index int) (Product, error)

	// Remove deletes the product with the given id.
	Remove(id string) (Product, error)

	// Get returns the product with the given id and its current global index.
	Get(id string) (Product, int, error)

	// List returns a snapshot; modifications do not affect the store.
	List() Snapshot

	// Subscribe returns a channel that receives changes.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan Change

	// Unsubscribe removes a subscription and closes the channel.
	Unsubscribe(ch <-chan Change)
}
