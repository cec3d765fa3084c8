package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/catalog"
)

func main() {
	c, err := catalog.New(
		catalog.WithTitle("Stationery Shop"),
		catalog.WithPageSize(5),
		catalog.WithPort(8080),
		catalog.WithProducts(
			catalog.ProductInput{Name: "Pen", Price: 1.5},
			catalog.ProductInput{Name: "Pencil", Price: 0.8},
			catalog.ProductInput{Name: "Notebook", Price: 4},
			catalog.ProductInput{Name: "Banana Stickers", Price: 2.25},
			catalog.ProductInput{Name: "Stapler", Price: 12},
			catalog.ProductInput{Name: "Bandana Print Folder", Price: 3.1},
		),
		catalog.WithChangeCallback(func(ch catalog.Change) {
			slog.Info("catalog changed",
				"kind", string(ch.Kind),
				"product", ch.Product.Name,
				"index", ch.Index,
				"version", ch.Version,
			)
		}),
	)
	if err != nil {
		slog.Error("failed to create catalog", "error", err)
		os.Exit(1)
	}

	// search from Go: rows carry ids, so the delete below hits the right record
	page := c.Query("an", 1)
	fmt.Printf("\n  %d products match \"an\" (page %d / %d)\n", page.Total, page.Number, page.TotalPages)
	for _, row := range page.Rows {
		fmt.Printf("    #%d %-22s %6.2f\n", row.Index, row.Product.Name, row.Product.Price)
	}

	fmt.Println()
	fmt.Println("  Open http://localhost:8080 in your browser")
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.Start(ctx); err != nil {
		slog.Error("catalog error", "error", err)
		os.Exit(1)
	}
}
