package config

import (
	"fmt"

	"github.com/jpalmerr/catalog"
)

// BuildProducts converts the configured seed products into SDK inputs,
// preserving their order.
func BuildProducts(cfg *Config) ([]catalog.ProductInput, error) {
	products := make([]catalog.ProductInput, 0, len(cfg.Products))
	for i, pc := range cfg.Products {
		if pc.Price == nil {
			return nil, fmt.Errorf("products[%d] (%s): price is required", i, pc.Name)
		}
		products = append(products, catalog.ProductInput{Name: pc.Name, Price: *pc.Price})
	}
	return products, nil
}

// Options converts the configuration into SDK options for [catalog.New].
func Options(cfg *Config) ([]catalog.Option, error) {
	products, err := BuildProducts(cfg)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{
		catalog.WithPort(cfg.Port),
		catalog.WithPageSize(cfg.PageSize),
		catalog.WithProducts(products...),
	}
	if cfg.Title != "" {
		opts = append(opts, catalog.WithTitle(cfg.Title))
	}
	return opts, nil
}
