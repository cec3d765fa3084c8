package catalog

import (
	"errors"
	"fmt"
	"log/slog"
)

// catalogConfig holds mutable state during Catalog construction.
type catalogConfig struct {
	title           string
	port            int
	pageSize        int
	logger          *slog.Logger
	products        []ProductInput
	changeCallbacks []func(Change)
}

// Option is a function that configures a [Catalog] during construction.
//
// Built-in options: [WithProducts], [WithPageSize], [WithPort], [WithTitle],
// [WithLogger], [WithChangeCallback].
type Option func(*catalogConfig) error

// WithProducts seeds the catalog with products, in order.
//
// Can be called multiple times; products accumulate. Each product is
// validated by [New], which fails on the first invalid one.
func WithProducts(products ...ProductInput) Option {
	return func(cfg *catalogConfig) error {
		cfg.products = append(cfg.products, products...)
		return nil
	}
}

// WithPageSize sets how many products [Catalog.Query] returns per page.
//
// Defaults to 5. Returns an error if n is outside 1-100.
func WithPageSize(n int) Option {
	return func(cfg *catalogConfig) error {
		if n < 1 || n > maxPageSize {
			return fmt.Errorf("page size must be between 1 and %d, got %d", maxPageSize, n)
		}
		cfg.pageSize = n
		return nil
	}
}

// WithPort sets the HTTP port used by [Catalog.Start].
//
// Defaults to 8080. Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *catalogConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithTitle sets the dashboard title displayed in the browser tab and header.
//
// If not specified or empty, defaults to "Catalog".
func WithTitle(title string) Option {
	return func(cfg *catalogConfig) error {
		cfg.title = title
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Catalog.
//
// If not specified, [slog.Default] is used. Returns an error if the logger is nil.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	c, err := catalog.New(catalog.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *catalogConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithChangeCallback registers a function to be called after every
// successful add, edit or remove.
//
// Callbacks run synchronously, in registration order, on the goroutine that
// made the change and before that call returns. They may read the catalog.
// Derived values such as pages should be recomputed in the callback rather
// than cached across changes.
//
// IMPORTANT: Callbacks must not block and must not mutate the catalog.
// Panics within callbacks are recovered and logged.
//
// Example:
//
//	c, err := catalog.New(
//	    catalog.WithChangeCallback(func(ch catalog.Change) {
//	        log.Printf("%s %s (version %d)", ch.Kind, ch.Product.Name, ch.Version)
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithChangeCallback(cb func(Change)) Option {
	return func(cfg *catalogConfig) error {
		if cb == nil {
			return nil // no-op for nil callback (safe to call)
		}
		cfg.changeCallbacks = append(cfg.changeCallbacks, cb)
		return nil
	}
}
