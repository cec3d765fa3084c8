package catalog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.Port() != 8080 {
		t.Errorf("Port() = %d, want 8080", c.Port())
	}
	if c.PageSize() != 5 {
		t.Errorf("PageSize() = %d, want 5", c.PageSize())
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Version() != 0 {
		t.Errorf("Version() = %d, want 0", c.Version())
	}
	if c.Title() != "Catalog" {
		t.Errorf("Title() = %q, want %q", c.Title(), "Catalog")
	}
}

func TestWithProducts_SeedsInOrder(t *testing.T) {
	c, err := New(
		WithProducts(ProductInput{Name: "Pen", Price: 10}),
		WithProducts(ProductInput{Name: "Book", Price: 20}, ProductInput{Name: "Ink", Price: 3}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := names(c.List())
	want := []string{"Pen", "Book", "Ink"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestWithProducts_InvalidSeed(t *testing.T) {
	_, err := New(WithProducts(
		ProductInput{Name: "Pen", Price: 10},
		ProductInput{Name: "", Price: 1},
	))
	if err == nil {
		t.Fatal("New() expected error for invalid seed product, got nil")
	}
	if !strings.Contains(err.Error(), "products[1]") {
		t.Errorf("New() error = %v, want error containing 'products[1]'", err)
	}
}

func TestWithPageSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"one", 1, false},
		{"ten", 10, false},
		{"max", 100, false},
		{"zero", 0, true},
		{"negative", -5, true},
		{"too large", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(WithPageSize(tt.size))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(WithPageSize(%d)) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if err == nil && c.PageSize() != tt.size {
				t.Errorf("PageSize() = %d, want %d", c.PageSize(), tt.size)
			}
		})
	}
}

func TestWithPort(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid", 9090, false},
		{"min", 1, false},
		{"max", 65535, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"too large", 65536, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(WithPort(tt.port))
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(WithPort(%d)) error = %v, wantErr %v", tt.port, err, tt.wantErr)
			}
			if err == nil && c.Port() != tt.port {
				t.Errorf("Port() = %d, want %d", c.Port(), tt.port)
			}
		})
	}
}

func TestWithTitle(t *testing.T) {
	c, err := New(WithTitle("Stationery"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Title() != "Stationery" {
		t.Errorf("Title() = %q, want %q", c.Title(), "Stationery")
	}

	c, err = New(WithTitle(""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Title() != "Catalog" {
		t.Errorf("Title() with empty title = %q, want %q", c.Title(), "Catalog")
	}
}

func TestWithLogger_Nil(t *testing.T) {
	_, err := New(WithLogger(nil))
	if err == nil {
		t.Error("New(WithLogger(nil)) expected error, got nil")
	}
}

func TestWithLogger_ReceivesMutationLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c, err := New(WithLogger(logger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p, _ := c.Add(ProductInput{Name: "Pen", Price: 10})
	_ = c.RemoveAt(5)

	out := buf.String()
	if !strings.Contains(out, "product added") || !strings.Contains(out, p.ID) {
		t.Errorf("log output missing add entry: %s", out)
	}
	if !strings.Contains(out, "remove rejected") {
		t.Errorf("log output missing rejected remove: %s", out)
	}
}
