package memory

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/niharikakanakala/products-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository
type ProductRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[int64]domain.Product),
		nextID:   1,
		tracer:   tracer,
		logger:   logger,
	}
}

// Create stores a new product, assigning an ID when the product carries none.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = *product

	span.SetAttributes(
		attribute.Int64("product.id", product.ID),
		attribute.String("product.name", product.Name),
	)

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.Int64("product_id", product.ID),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// FindAll retrieves all products
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		return int(a.ID - b.ID)
	})

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.Int64("product_id", id),
		)
		return nil, domain.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindByName retrieves products whose name contains the given text,
// case-insensitively. An empty match is returned as an empty slice.
func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	matches := make([]domain.Product, 0)
	for _, product := range r.products {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			matches = append(matches, product)
		}
	}
	slices.SortFunc(matches, func(a, b domain.Product) int {
		return int(a.ID - b.ID)
	})

	span.SetAttributes(attribute.Int("product.count", len(matches)))
	span.SetStatus(codes.Ok, "Products searched successfully")
	return matches, nil
}

// FindByCategory retrieves products in the given category.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]domain.Product, 0)
	for _, product := range r.products {
		if strings.EqualFold(product.Category, category) {
			matches = append(matches, product)
		}
	}
	slices.SortFunc(matches, func(a, b domain.Product) int {
		return int(a.ID - b.ID)
	})

	span.SetAttributes(attribute.Int("product.count", len(matches)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return matches, nil
}

// FindAllSorted retrieves all products ordered by the given criterion.
func (r *ProductRepository) FindAllSorted(ctx context.Context, by domain.SortCriterion, order domain.SortOrder) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAllSorted")
	defer span.End()

	span.SetAttributes(
		attribute.String("sort.criterion", string(by)),
		attribute.String("sort.order", string(order)),
	)

	products, err := r.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list products")
		return nil, err
	}

	slices.SortStableFunc(products, func(a, b domain.Product) int {
		var cmp int
		switch by {
		case domain.SortByName:
			cmp = strings.Compare(a.Name, b.Name)
		case domain.SortByCategory:
			cmp = strings.Compare(a.Category, b.Category)
		case domain.SortByPrice:
			switch {
			case a.Price < b.Price:
				cmp = -1
			case a.Price > b.Price:
				cmp = 1
			}
		}
		if order.Descending() {
			return -cmp
		}
		return cmp
	})

	span.SetStatus(codes.Ok, "Products sorted successfully")
	return products, nil
}

// Count returns the number of stored products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.Count")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	count := int64(len(r.products))
	span.SetAttributes(attribute.Int64("product.count", count))
	span.SetStatus(codes.Ok, "Products counted successfully")
	return count, nil
}

// Update replaces a stored product. The product must already exist.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", product.ID))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = *product

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.Int64("product_id", product.ID),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", id))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		span.RecordError(domain.ErrProductNotFound)
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}
	delete(r.products, id)

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.Int64("product_id", id),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// DeleteAll removes every stored product and resets the ID sequence.
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.DeleteAll")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[int64]domain.Product)
	r.nextID = 1

	r.logger.InfoContext(ctx, "All products deleted from repository")

	span.SetStatus(codes.Ok, "Products deleted successfully")
	return nil
}
