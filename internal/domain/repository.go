package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the contract for product storage
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindByName(ctx context.Context, name string) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	FindAllSorted(ctx context.Context, by SortCriterion, order SortOrder) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
