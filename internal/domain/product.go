package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidProductName  = errors.New("product name is required")
	ErrInvalidProductPrice = errors.New("product price must be positive")
)

// Product represents the product entity. The ID is assigned by the storage
// layer when zero; callers may supply their own.
type Product struct {
	ID       int64
	Name     string
	Category string
	Price    float64
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.Price <= 0 {
		return ErrInvalidProductPrice
	}
	return nil
}

// SortCriterion selects which product field a sorted listing orders by.
type SortCriterion string

const (
	SortByName     SortCriterion = "name"
	SortByCategory SortCriterion = "category"
	SortByPrice    SortCriterion = "price"
)

// ParseSortCriterion converts a raw criterion string into a SortCriterion.
// Anything outside the closed set is rejected before storage is touched.
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch SortCriterion(s) {
	case SortByName, SortByCategory, SortByPrice:
		return SortCriterion(s), nil
	default:
		return "", fmt.Errorf("unknown sort criterion %q", s)
	}
}

// SortOrder carries the requested ordering direction. The value is forwarded
// verbatim from the HTTP layer; interpretation happens only here.
type SortOrder string

// Descending reports whether the order asks for a descending sort. Any value
// other than desc/descending means ascending.
func (o SortOrder) Descending() bool {
	switch strings.ToLower(string(o)) {
	case "desc", "descending":
		return true
	default:
		return false
	}
}
