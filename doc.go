// Package catalog provides an embeddable, in-memory product catalog with
// case-insensitive search, pagination and a live web dashboard.
//
// The catalog is an ordered list of products (name and price). Every product
// receives a stable id when it is added, and every row produced by a search
// carries the product's position in the whole catalog, so edits and deletes
// made from a filtered or paginated view always hit the intended record.
//
// # Quick Start
//
// Create a catalog, seed it, and serve the dashboard with graceful shutdown:
//
//	c, _ := catalog.New(
//	    catalog.WithProducts(
//	        catalog.ProductInput{Name: "Pen", Price: 10},
//	        catalog.ProductInput{Name: "Book", Price: 20},
//	    ),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	c.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// The catalog uses the functional options pattern:
//
//	c, err := catalog.New(
//	    catalog.WithTitle("Shop"),
//	    catalog.WithPageSize(10),
//	    catalog.WithPort(9090),
//	    catalog.WithChangeCallback(func(ch catalog.Change) {
//	        log.Printf("%s %s (version %d)", ch.Kind, ch.Product.Name, ch.Version)
//	    }),
//	)
//
// # Searching and Paging
//
// [Catalog.Query] filters by name and returns one page:
//
//	page := c.Query("an", 1)
//	for _, row := range page.Rows {
//	    fmt.Println(row.Index, row.Product.Name)
//	}
//	_ = c.Remove(page.Rows[0].Product.ID) // removes exactly that row
//
// Requested pages outside [1, TotalPages] are clamped; an empty result still
// has one page.
//
// # Errors
//
// Rejected operations leave the catalog untouched and return an error that
// matches one of [ErrInvalidInput], [ErrOutOfRange] or [ErrNotFound] with
// errors.Is.
//
// # Architecture
//
// The catalog consists of several internal packages (under internal/):
//
//   - internal/store: In-memory product storage with observers and pub/sub
//   - internal/view: Search and pagination over a catalog snapshot
//   - internal/input: Validation of submitted products
//   - internal/server: HTTP server with REST API and Server-Sent Events
//   - dashboard: Embedded web UI assets
//
// The internal packages are not part of the public API and may change
// without notice.
package catalog
