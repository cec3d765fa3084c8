// Package input validates product data before it reaches the store.
//
// The store itself accepts any record; required-field checks happen here, at
// the point of submission, for every producer of products (the SDK, the HTTP
// API and the YAML config loader).
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jpalmerr/catalog/internal/store"
)

// ErrInvalidInput is returned when a submitted product is missing a required
// field or carries a negative price.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Product is a submitted, not yet validated product.
//
// Price is a pointer so a missing price can be told apart from a zero price.
type Product struct {
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

// Validate checks p and returns the trimmed storage record.
//
// Surrounding whitespace is removed from the name before the required check,
// so a blank name is rejected.
func Validate(p Product) (store.Product, error) {
	p.Name = strings.TrimSpace(p.Name)

	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return store.Product{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
		return store.Product{}, fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, ", "))
	}

	return store.Product{Name: p.Name, Price: *p.Price}, nil
}

// describe renders a field error the way config errors read ("name is required").
func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return field + " must not be negative"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// Float returns a pointer to v, for building a [Product] in code.
func Float(v float64) *float64 {
	return &v
}
