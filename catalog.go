package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jpalmerr/catalog/dashboard"
	"github.com/jpalmerr/catalog/internal/server"
	"github.com/jpalmerr/catalog/internal/store"
	"github.com/jpalmerr/catalog/internal/view"
)

const (
	defaultPort     = 8080
	defaultPageSize = view.DefaultPageSize
	defaultTitle    = "Catalog"
	maxPageSize     = 100
)

// Catalog is an ordered, in-memory collection of products.
//
// Catalog is the single source of truth for its products: every read and
// write goes through it, and every successful write notifies the callbacks
// registered with [WithChangeCallback] before the write returns. A Catalog is
// created with [New]; there is no shared global instance.
//
// Products are addressed either by id (stable for the product's lifetime) or
// by global index (its position in the full, unfiltered catalog). Removing a
// product shifts every later product down by one, so prefer ids when the
// address was obtained before other mutations may have happened.
//
// Catalog is safe for concurrent use. [Catalog.Start] additionally serves the
// catalog over HTTP with a small dashboard:
//
//	c, err := catalog.New(catalog.WithTitle("Stationery"))
//	if err != nil {
//	    slog.Error("failed to create catalog", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	c.Start(ctx) // blocks until context cancelled
type Catalog struct {
	store    *store.MemoryStore
	title    string
	port     int
	pageSize int
	logger   *slog.Logger
}

// New creates a [Catalog] with the given options.
//
// Defaults:
//   - Port: 8080
//   - Page size: 5
//   - Title: "Catalog"
//
// Seed products from [WithProducts] are validated and added in order before
// New returns; change callbacks are not invoked for them.
//
// Example:
//
//	c, err := catalog.New(
//	    catalog.WithProducts(
//	        catalog.ProductInput{Name: "Pen", Price: 10},
//	        catalog.ProductInput{Name: "Book", Price: 20},
//	    ),
//	    catalog.WithPageSize(10),
//	)
func New(opts ...Option) (*Catalog, error) {
	cfg := &catalogConfig{
		port:     defaultPort,
		pageSize: defaultPageSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.title == "" {
		cfg.title = defaultTitle
	}

	c := &Catalog{
		store:    store.NewMemoryStore(),
		title:    cfg.title,
		port:     cfg.port,
		pageSize: cfg.pageSize,
		logger:   logger,
	}

	for i, in := range cfg.products {
		p, err := validateInput(in)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		c.store.Add(p)
	}

	for _, cb := range cfg.changeCallbacks {
		c.store.Observe(func(sc store.Change) {
			invokeCallbackSafe(cb, toChange(sc), c.logger)
		})
	}

	return c, nil
}

// Add appends a product to the end of the catalog and returns it with its id.
//
// Returns an error wrapping [ErrInvalidInput] if the name is blank or the
// price is negative.
func (c *Catalog) Add(in ProductInput) (Product, error) {
	p, err := validateInput(in)
	if err != nil {
		c.logger.Debug("add rejected", "error", err)
		return Product{}, err
	}

	added := c.store.Add(p)
	c.logger.Debug("product added", "product_id", added.ID, "name", added.Name)
	return toProduct(added), nil
}

// Edit replaces the name and price of the product with the given id.
// The product keeps its id and position.
//
// Returns an error wrapping [ErrInvalidInput] or [ErrNotFound].
func (c *Catalog) Edit(id string, in ProductInput) (Product, error) {
	p, err := validateInput(in)
	if err != nil {
		c.logger.Debug("edit rejected", "product_id", id, "error", err)
		return Product{}, err
	}

	edited, err := c.store.Edit(id, p)
	if err != nil {
		c.logger.Debug("edit rejected", "product_id", id, "error", err)
		return Product{}, err
	}
	c.logger.Debug("product edited", "product_id", edited.ID)
	return toProduct(edited), nil
}

// EditAt replaces the name and price of the product at a global index.
//
// Returns an error wrapping [ErrInvalidInput] or [ErrOutOfRange].
func (c *Catalog) EditAt(index int, in ProductInput) (Product, error) {
	p, err := validateInput(in)
	if err != nil {
		c.logger.Debug("edit rejected", "index", index, "error", err)
		return Product{}, err
	}

	edited, err := c.store.EditAt(index, p)
	if err != nil {
		c.logger.Debug("edit rejected", "index", index, "error", err)
		return Product{}, err
	}
	c.logger.Debug("product edited", "product_id", edited.ID, "index", index)
	return toProduct(edited), nil
}

// Remove deletes the product with the given id.
//
// Returns an error wrapping [ErrNotFound].
func (c *Catalog) Remove(id string) error {
	removed, err := c.store.Remove(id)
	if err != nil {
		c.logger.Debug("remove rejected", "product_id", id, "error", err)
		return err
	}
	c.logger.Debug("product removed", "product_id", removed.ID)
	return nil
}

// RemoveAt deletes the product at a global index. Every later product moves
// down by one, so indices read before the call must be re-resolved.
//
// Returns an error wrapping [ErrOutOfRange].
func (c *Catalog) RemoveAt(index int) error {
	removed, err := c.store.RemoveAt(index)
	if err != nil {
		c.logger.Debug("remove rejected", "index", index, "error", err)
		return err
	}
	c.logger.Debug("product removed", "product_id", removed.ID, "index", index)
	return nil
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, error) {
	p, _, err := c.store.Get(id)
	if err != nil {
		return Product{}, err
	}
	return toProduct(p), nil
}

// IndexOf returns the current global index of the product with the given id.
func (c *Catalog) IndexOf(id string) (int, error) {
	_, index, err := c.store.Get(id)
	return index, err
}

// List returns all products in catalog order.
//
// The returned slice is a copy; modifying it does not affect the catalog.
func (c *Catalog) List() []Product {
	snap := c.store.List()
	products := make([]Product, len(snap.Products))
	for i, p := range snap.Products {
		products[i] = toProduct(p)
	}
	return products
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return c.store.Len()
}

// Version returns a counter that increases on every successful mutation.
// Equal versions mean an unchanged catalog.
func (c *Catalog) Version() uint64 {
	return c.store.Version()
}

// Query returns one page of products whose name contains term, ignoring
// case, using the configured page size. Page numbers are 1-based and
// clamped to the available pages.
func (c *Catalog) Query(term string, page int) Page {
	return c.QueryPage(term, c.pageSize, page)
}

// QueryPage is [Catalog.Query] with an explicit page size. Sizes above 100
// are capped at 100; sizes below 1 use the default of 5.
func (c *Catalog) QueryPage(term string, pageSize, page int) Page {
	pageSize = min(pageSize, maxPageSize)
	return toPage(view.Query(c.store.List(), term, pageSize, page))
}

// Start serves the HTTP API and dashboard.
//
// Start is a blocking call that runs until the provided context is cancelled.
// The catalog remains usable from Go while it is being served; changes made
// either way are visible to both.
//
// Returns nil on graceful shutdown. Returns an error if the HTTP server fails to start.
func (c *Catalog) Start(ctx context.Context) error {
	c.logger.Info("catalog starting", "product_count", c.Len(), "page_size", c.pageSize)
	c.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", c.port))

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	httpServer := server.NewServer(c.store, c.port, c.pageSize, dashboard.Assets, c.title, c.logger)
	if err := httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	c.logger.Info("catalog stopped")
	return nil
}

// Port returns the configured HTTP port for the dashboard server.
func (c *Catalog) Port() int {
	return c.port
}

// PageSize returns the configured page size used by [Catalog.Query].
func (c *Catalog) PageSize() int {
	return c.pageSize
}

// Title returns the configured dashboard title.
func (c *Catalog) Title() string {
	return c.title
}

// invokeCallbackSafe calls a change callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(Change), change Change, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("change callback panicked",
				"panic", r,
				"kind", string(change.Kind),
				"product_id", change.Product.ID,
			)
		}
	}()
	cb(change)
}
